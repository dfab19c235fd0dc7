package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit ROOM EVENT_ID MESSAGE",
		Short: "Replace the body of a previously sent message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roomID, err := appCtx.Client.FindRoom(ctx, args[0])
			if err != nil {
				return err
			}
			eventID, err := appCtx.Client.EditMessage(ctx, roomID, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Edited via %s\n", eventID)
			return nil
		},
	}
}
