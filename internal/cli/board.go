package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/laneboard/internal/models"
)

// BoardCmd returns the board command.
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board, lane by lane",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := context.Background()

			for _, laneName := range models.Lanes() {
				clients, err := a.Clients.LaneClients(ctx, laneName)
				if err != nil {
					return err
				}

				header := laneColor(laneName).Sprintf("── %s (%d)", laneName, len(clients))
				fmt.Println(header)
				if len(clients) == 0 {
					fmt.Println("   (empty)")
				}
				for _, c := range clients {
					fmt.Printf("   %2d. %s (#%d)\n", c.Priority, c.Name, c.ID)
				}
				fmt.Println()
			}
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func laneColor(lane string) *color.Color {
	switch lane {
	case models.StatusBacklog:
		return color.New(color.FgYellow)
	case models.StatusInProgress:
		return color.New(color.FgCyan)
	case models.StatusComplete:
		return color.New(color.FgGreen)
	}
	return color.New(color.Reset)
}
