// Package wire assembles the application from its parts.
//
// Unlike a package-global store handle, the database connection is owned by
// the returned App and released by Close: acquisition and release are scoped
// to the process that asked for them.
package wire

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/example/laneboard/internal/adapters/cache"
	"github.com/example/laneboard/internal/adapters/sqlite"
	"github.com/example/laneboard/internal/app"
	"github.com/example/laneboard/internal/config"
	"github.com/example/laneboard/internal/core/lane"
	"github.com/example/laneboard/internal/db"
	"github.com/example/laneboard/internal/ports/primary"
)

// App holds the wired application and the resources it owns.
type App struct {
	DB      *sql.DB
	Clients primary.ClientService
	Logger  *log.Logger

	redis *redis.Client
}

// New opens the store and wires repositories and services from the config.
func New(cfg *config.Config) (*App, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return build(cfg, database)
}

// NewEphemeral wires the application against a fresh in-memory store.
func NewEphemeral(cfg *config.Config) (*App, error) {
	database, err := db.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return build(cfg, database)
}

func build(cfg *config.Config, database *sql.DB) (*App, error) {
	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	a := &App{DB: database, Logger: logger}

	repo := sqlite.NewClientRepository(database)
	opts := lane.Options{LegacyGaps: cfg.LegacyGaps}

	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.Clients = app.NewClientService(cache.NewClientRepository(repo, a.redis, cfg.CacheTTLDuration()), opts)
	} else {
		a.Clients = app.NewClientService(repo, opts)
	}

	return a, nil
}

// Close releases the resources the App owns.
func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
