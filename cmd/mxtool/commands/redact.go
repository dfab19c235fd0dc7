package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func redactCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "redact ROOM EVENT_ID",
		Short: "Remove an event's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roomID, err := appCtx.Client.FindRoom(ctx, args[0])
			if err != nil {
				return err
			}
			eventID, err := appCtx.Client.Redact(ctx, roomID, args[1], reason)
			if err != nil {
				return err
			}
			fmt.Printf("Redacted via %s\n", eventID)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded with the redaction")
	return cmd
}
