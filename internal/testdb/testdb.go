// Package testdb provides a migrated Postgres pool for integration tests.
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"ecoshop/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// Pool returns a pool on a freshly truncated, migrated database. It uses
// TEST_DB_DSN when set and otherwise starts a throwaway Postgres container.
// The test is skipped when neither is available.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = containerConnString(ctx)
		if dsn == "" {
			t.Skipf("no test database: set TEST_DB_DSN or run docker (%v)", containerErr)
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	Reset(ctx, t, pool)
	return pool
}

// Reset empties every table and restarts identities.
func Reset(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE orders, favorites, cart_items, products, categories RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// InsertProduct adds a product row and returns its id.
func InsertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name, price string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(ctx, `
INSERT INTO products (name, price, category, image, description)
VALUES ($1, $2::numeric, 'test', 'https://img.test/' || $1::text, 'desc')
RETURNING product_id
`, name, price).Scan(&id)
	if err != nil {
		t.Fatalf("insert product %s: %v", name, err)
	}
	return id
}

// containerConnString starts one container per test binary. Containers are
// reaped by testcontainers' ryuk sidecar when the process exits.
func containerConnString(ctx context.Context) string {
	containerOnce.Do(func() {
		// testcontainers panics when no docker host can be found.
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("start postgres container: %v", r)
			}
		}()
		c, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("ecoshop_test"),
			postgres.WithUsername("ecoshop"),
			postgres.WithPassword("ecoshop"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			containerErr = err
			return
		}
		containerDSN, containerErr = c.ConnectionString(ctx, "sslmode=disable")
	})
	return containerDSN
}
