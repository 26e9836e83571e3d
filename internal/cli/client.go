package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/laneboard/internal/models"
	"github.com/example/laneboard/internal/ports/primary"
	"github.com/example/laneboard/internal/wire"
)

// ClientCmd returns the client command with its subcommands.
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients (cards on the board)",
		Long:  "Create, list, move, complete, and delete clients in the laneboard store",
	}

	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientShowCmd())
	cmd.AddCommand(clientCreateCmd())
	cmd.AddCommand(clientMoveCmd())
	cmd.AddCommand(clientDoneCmd())
	cmd.AddCommand(clientDeleteCmd())
	return cmd
}

func clientListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := context.Background()

			status, _ := cmd.Flags().GetString("status")

			var clients []primary.Client
			if status != "" {
				clients, err = a.Clients.LaneClients(ctx, status)
			} else {
				clients, err = a.Clients.ListClients(ctx)
			}
			if err != nil {
				return err
			}

			for _, c := range clients {
				fmt.Printf("%4d  %-12s %2d  %s\n", c.ID, c.Status, c.Priority, c.Name)
			}
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP("status", "s", "", "Filter by lane (backlog, in-progress, complete)")
	return cmd
}

func clientShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Clients.GetClient(context.Background(), id)
			if err != nil {
				return err
			}

			fmt.Printf("Client %d: %s\n", c.ID, c.Name)
			fmt.Printf("  Status:   %s\n", c.Status)
			fmt.Printf("  Priority: %d\n", c.Priority)
			if c.Description != "" {
				fmt.Printf("  Notes:    %s\n", c.Description)
			}
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func clientCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")

			req := primary.CreateClientRequest{
				Name:        args[0],
				Description: description,
				Status:      status,
			}
			if cmd.Flags().Changed("priority") {
				p, _ := cmd.Flags().GetInt("priority")
				req.Priority = &p
			}

			c, err := a.Clients.CreateClient(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			fmt.Printf("✓ Created client %d: %s (%s, priority %d)\n", c.ID, c.Name, c.Status, c.Priority)
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP("description", "d", "", "Client description")
	cmd.Flags().StringP("status", "s", "", "Lane (defaults to backlog)")
	cmd.Flags().IntP("priority", "p", 0, "Position within the lane (defaults to bottom)")
	return cmd
}

func clientMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a client to a new lane and/or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			req := primary.ReorderRequest{ID: id}
			if cmd.Flags().Changed("status") {
				s, _ := cmd.Flags().GetString("status")
				req.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				p, _ := cmd.Flags().GetInt("priority")
				req.Priority = &p
			}
			if req.Status == nil && req.Priority == nil {
				return fmt.Errorf("nothing to do: pass --status and/or --priority")
			}

			if _, err := a.Clients.Reorder(context.Background(), req); err != nil {
				return fmt.Errorf("failed to move client: %w", err)
			}

			c, err := a.Clients.GetClient(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Moved client %d to %s, priority %d\n", c.ID, c.Status, c.Priority)
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP("status", "s", "", "Target lane")
	cmd.Flags().IntP("priority", "p", 0, "Target position within the lane")
	return cmd
}

func clientDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a client complete (appended to the bottom of the complete lane)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			status := models.StatusComplete
			if _, err := a.Clients.Reorder(context.Background(), primary.ReorderRequest{ID: id, Status: &status}); err != nil {
				return fmt.Errorf("failed to complete client: %w", err)
			}

			fmt.Printf("✓ Completed client %d\n", id)
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func clientDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a client and compact its lane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Clients.DeleteClient(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			fmt.Printf("✓ Deleted client %d\n", id)
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

// wireApp builds the application from config + flags for one CLI invocation.
func wireApp(cmd *cobra.Command) (*wire.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return wire.New(cfg)
}
