package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hunter-yen/hunter-server/internal/database"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
)

var (
	testPoolOnce sync.Once
	testPool     *pgxpool.Pool
	testPoolErr  string
)

// setupTestPool starts one Postgres container per test binary, applies the
// migrations and seeds the default catalog. Tests skip when Docker is missing.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testPoolOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				testPoolErr = "container start panicked (likely Docker issue)"
			}
		}()

		ctx := context.Background()
		pgContainer, err := tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			testPoolErr = "failed to start postgres container: " + err.Error()
			return
		}

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testPoolErr = "failed to get connection string: " + err.Error()
			return
		}

		pool, err := database.NewPool(ctx, connStr, database.PoolOptions{MaxConns: 10})
		if err != nil {
			testPoolErr = "failed to connect: " + err.Error()
			return
		}
		if err := database.Migrate(ctx, pool, database.MigrateUp); err != nil {
			testPoolErr = "failed to migrate: " + err.Error()
			return
		}

		content, err := gamedata.Default()
		if err != nil {
			testPoolErr = "failed to load content: " + err.Error()
			return
		}
		if err := NewCatalogRepository(pool).SeedCatalog(ctx, content.Catalog); err != nil {
			testPoolErr = "failed to seed catalog: " + err.Error()
			return
		}
		testPool = pool
	})

	if testPool == nil {
		t.Skipf("Skipping integration test: %s", testPoolErr)
	}
	return testPool
}
