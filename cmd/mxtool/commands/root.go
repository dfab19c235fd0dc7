package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mxtool/internal/app"
)

var (
	configPath string
	logLevel   string
	appCtx     *app.App
)

// Execute builds the CLI and runs it under ctx; ctx cancellation (Ctrl-C)
// aborts in-flight work.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:           "mxtool",
		Short:         "Matrix messaging and key-backup recovery CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			appCtx, err = app.New(app.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/mxtool/config.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, notice, warning, error)")

	root.AddCommand(
		sendCmd(), readCmd(), editCmd(), reactCmd(), redactCmd(),
		roomsCmd(), resolveCmd(), backupCmd(),
	)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
