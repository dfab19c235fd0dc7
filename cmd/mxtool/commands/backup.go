package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mxtool/internal/services/recovery"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and restore the encrypted key backup",
	}
	cmd.AddCommand(backupStatusCmd(), backupRestoreCmd())
	return cmd
}

func backupStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server-side backup version and session counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, rooms, sessions, err := appCtx.Recovery.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("Algorithm:  %s\n", info.Algorithm)
			fmt.Printf("Public key: %s\n", info.AuthData.PublicKey)
			fmt.Printf("Rooms:      %d\n", rooms)
			fmt.Printf("Sessions:   %d\n", sessions)
			return nil
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	var (
		recoveryKey string
		passphrase  string
		cachePass   string
		workers     int
		out         string
	)
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Recover the backup key and decrypt every backed-up session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cred := recovery.Credential{RecoveryKey: recoveryKey, Passphrase: passphrase}
			if cred.RecoveryKey == "" && cred.Passphrase == "" && cachePass == "" {
				var err error
				cred.RecoveryKey, err = readSecret("Recovery key: ")
				if err != nil {
					return err
				}
			}
			if workers == 0 {
				workers = appCtx.Cfg.Workers
			}

			result, err := appCtx.Recovery.Restore(ctx, cred, recovery.Options{
				CachePassphrase: cachePass,
				Workers:         workers,
			})
			if err != nil {
				return err
			}

			if result.FromCache {
				fmt.Println("Backup key loaded from local cache")
			}
			fmt.Printf("Imported: %d\n", result.Imported)
			fmt.Printf("Failed:   %d\n", result.Failed)

			if out != "" {
				f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(f)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result.Sessions); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Printf("Wrote %d sessions to %s\n", len(result.Sessions), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&recoveryKey, "recovery-key", "", "base58 recovery key (prompted when omitted)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "recovery passphrase")
	cmd.Flags().StringVar(&cachePass, "cache-pass", "", "local passphrase sealing the backup-key cache")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent session decryptions (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "write decrypted session records to this JSON file")
	return cmd
}
