package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/laneboard/internal/api"
	"github.com/example/laneboard/internal/config"
	"github.com/example/laneboard/internal/wire"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the laneboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ephemeral, _ := cmd.Flags().GetBool("ephemeral")

			var a *wire.App
			if ephemeral {
				a, err = wire.NewEphemeral(cfg)
			} else {
				a, err = wire.New(cfg)
			}
			if err != nil {
				return err
			}
			defer a.Close()

			e := api.NewServer(a.Clients, a.Logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(cfg.ListenAddr)
			}()
			a.Logger.WithField("addr", cfg.ListenAddr).Info("laneboard listening")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-quit:
				a.Logger.WithField("signal", sig.String()).Info("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(ctx)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().Bool("ephemeral", false, "Use a fresh in-memory database")
	return cmd
}

// loadConfig loads the config file from the working directory and applies
// command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if legacy, _ := cmd.Flags().GetBool("legacy-gaps"); legacy {
		cfg.LegacyGaps = true
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}

	return cfg, nil
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	cmd.Flags().String("db", "", "Database file path (overrides config)")
	cmd.Flags().Bool("legacy-gaps", false, "Preserve historic non-compacting lane moves")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
}
