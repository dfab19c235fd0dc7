package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react ROOM EVENT_ID KEY",
		Short: "Attach a reaction (usually an emoji) to an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roomID, err := appCtx.Client.FindRoom(ctx, args[0])
			if err != nil {
				return err
			}
			eventID, err := appCtx.Client.React(ctx, roomID, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Reacted via %s\n", eventID)
			return nil
		},
	}
}
