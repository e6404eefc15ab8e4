package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/database"
)

const migrateTimeout = 5 * time.Minute

var devtoolPoolOptions = database.PoolOptions{MaxConns: 2}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply embedded database migrations (up, down, status, reset)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, reset")
	}
	direction := args[0]

	switch direction {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
	case database.MigrateReset:
		if getEnv("ENVIRONMENT", envDev) == envProduction {
			return fmt.Errorf("refusing to reset a production database")
		}
		if !confirm("This drops every table") {
			PrintWarning("Reset cancelled")
			return nil
		}
	default:
		return fmt.Errorf("unknown subcommand: %s", direction)
	}

	dbURL := databaseURL()
	PrintInfo("Connecting to database: %s", redactPassword(dbURL))

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, dbURL, devtoolPoolOptions)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader(fmt.Sprintf("Running migrations: %s", direction))
	if err := database.Migrate(ctx, pool, direction); err != nil {
		return err
	}

	PrintSuccess("Migrations %s complete", direction)
	return nil
}
