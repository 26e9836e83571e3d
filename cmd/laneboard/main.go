package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/laneboard/internal/cli"
	"github.com/example/laneboard/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "laneboard",
		Short:   "laneboard - kanban-style client tracking API",
		Version: version.String(),
		Long: `laneboard tracks clients as cards in three lanes (backlog, in-progress,
complete), keeping each lane's priorities a dense 1..n sequence.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.BoardCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
