package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hunter-yen/hunter-server/internal/config"
	"github.com/hunter-yen/hunter-server/internal/database"
	"github.com/hunter-yen/hunter-server/internal/database/memory"
	"github.com/hunter-yen/hunter-server/internal/database/postgres"
	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/handler"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// Repositories holds the storage backend chosen by STORAGE.
// Both backends expose the same interfaces, so services never know which one runs.
type Repositories struct {
	Players  repository.Player
	Catalog  repository.Catalog
	Seeder   gamedata.Seeder
	EventLog eventlog.Repository
	Health   handler.Pinger

	close func()
}

// Close releases the backend's connections
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// NewMemoryRepositories returns a fresh in-process backend
func NewMemoryRepositories() *Repositories {
	store := memory.New()
	return &Repositories{
		Players:  store,
		Catalog:  store,
		Seeder:   store,
		EventLog: memory.NewEventLog(),
		Health:   store,
	}
}

// InitializeRepositories opens the configured backend. For PostgreSQL it
// connects the pool and applies pending migrations first.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	if cfg.Storage == config.StorageMemory {
		slog.Info(LogMsgUsingMemoryStorage)
		return NewMemoryRepositories(), nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}
	if err := database.Migrate(ctx, pool, database.MigrateUp); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgUsingPostgresStorage, "host", cfg.DBHost, "db", cfg.DBName)
	catalog := postgres.NewCatalogRepository(pool)
	return &Repositories{
		Players:  postgres.NewPlayerRepository(pool),
		Catalog:  catalog,
		Seeder:   catalog,
		EventLog: postgres.NewEventLogRepository(pool),
		Health:   pool,
		close:    pool.Close,
	}, nil
}

// SyncCatalog loads the game content and upserts its catalog into storage.
// An empty path uses the embedded content.
func SyncCatalog(ctx context.Context, seeder gamedata.Seeder, contentPath string) (*gamedata.Content, error) {
	content, err := gamedata.LoadFile(contentPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadContent, err)
	}
	if err := seeder.SeedCatalog(ctx, content.Catalog); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}
	slog.Info(LogMsgCatalogSynced,
		"items", len(content.Catalog.Items),
		"tasks", len(content.Catalog.Tasks),
		"stations", len(content.Catalog.Stations))
	return content, nil
}
