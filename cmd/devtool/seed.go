package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/bootstrap"
	"github.com/hunter-yen/hunter-server/internal/database"
	"github.com/hunter-yen/hunter-server/internal/database/postgres"
)

const seedTimeout = time.Minute

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Upsert the game catalog from a content file (default: embedded)"
}

func (c *SeedCommand) Run(args []string) error {
	contentPath := getEnv("GAME_CONTENT_PATH", "")
	if len(args) > 0 {
		contentPath = args[0]
	}

	dbURL := databaseURL()
	PrintInfo("Connecting to database: %s (redacted password)", redactPassword(dbURL))

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, dbURL, devtoolPoolOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	content, err := bootstrap.SyncCatalog(ctx, postgres.NewCatalogRepository(pool), contentPath)
	if err != nil {
		return err
	}

	PrintSuccess("Seeded content v%d: %d items, %d tasks, %d drop rules, %d stations",
		content.Version,
		len(content.Catalog.Items),
		len(content.Catalog.Tasks),
		len(content.Catalog.DropRules),
		len(content.Catalog.Stations))
	return nil
}
