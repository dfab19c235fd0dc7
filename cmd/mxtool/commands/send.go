package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	var (
		notice bool
		html   string
	)
	cmd := &cobra.Command{
		Use:   "send ROOM MESSAGE",
		Short: "Send a message to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roomID, err := appCtx.Client.FindRoom(ctx, args[0])
			if err != nil {
				return err
			}
			eventID, err := appCtx.Client.SendMessage(ctx, roomID, args[1], html, notice)
			if err != nil {
				return err
			}
			fmt.Printf("Sent %s\n", eventID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&notice, "notice", false, "send as m.notice instead of m.text")
	cmd.Flags().StringVar(&html, "html", "", "formatted HTML body to send alongside the plain text")
	return cmd
}
