package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func readCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "read ROOM",
		Short: "Print recent room messages, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roomID, err := appCtx.Client.FindRoom(ctx, args[0])
			if err != nil {
				return err
			}
			events, err := appCtx.Client.Messages(ctx, roomID, limit)
			if err != nil {
				return err
			}
			// /messages returns newest first.
			for i := len(events) - 1; i >= 0; i-- {
				e := events[i]
				if e.Type != "m.room.message" {
					continue
				}
				fmt.Printf("[%s] %s: %s\n", e.Time().Format("2006-01-02 15:04"), e.Sender, e.Body())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of events to fetch")
	return cmd
}
