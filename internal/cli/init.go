package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/laneboard/internal/config"
	"github.com/example/laneboard/internal/db"
	"github.com/example/laneboard/internal/wire"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and write a default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := wire.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			path := cfg.DBPath
			if path == "" {
				path, _ = db.DefaultPath()
			}
			fmt.Printf("✓ Initialized laneboard database at %s\n", path)
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

// SeedCmd returns the seed command.
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := wire.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := db.SeedFixtures(a.DB); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Seeded development fixtures")
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}
