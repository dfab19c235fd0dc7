package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func roomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List joined rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms, err := appCtx.Client.JoinedRooms(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range rooms {
				if r.Alias != "" {
					fmt.Printf("%s\t%s\t%s\n", r.ID, r.DisplayName(), r.Alias)
				} else {
					fmt.Printf("%s\t%s\n", r.ID, r.DisplayName())
				}
			}
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ALIAS",
		Short: "Resolve a #room:server alias to its room id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := appCtx.Client.ResolveAlias(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(roomID)
			return nil
		},
	}
}
