package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
)

const (
	waitMaxElapsed  = time.Minute
	waitPingTimeout = 3 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to accept connections (--timeout=1m)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	maxElapsed := waitMaxElapsed
	for _, arg := range args {
		name, value, ok := splitFlag(arg)
		if !ok || name != "timeout" {
			return fmt.Errorf("unknown argument: %s", arg)
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		maxElapsed = d
	}

	PrintHeader(fmt.Sprintf("Waiting for database (up to %v)...", maxElapsed))

	dbURL := databaseURL()
	attempt := 0

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = maxElapsed

	err := backoff.Retry(func() error {
		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), waitPingTimeout)
		defer cancel()

		conn, err := pgx.Connect(ctx, dbURL)
		if err == nil {
			err = conn.Ping(ctx)
			_   = conn.Close(ctx)
		}
		if err != nil {
			fmt.Printf("Database not ready (attempt %d): %v\n", attempt, err)
		}
		return err
	}, policy)
	if err != nil {
		return fmt.Errorf("database failed to become ready after %d attempts: %w", attempt, err)
	}

	PrintSuccess("Database is ready")
	return nil
}
