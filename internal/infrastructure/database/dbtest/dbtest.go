// Package dbtest opens a migrated Postgres database for repository tests.
// Tests skip unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"library-backend/internal/infrastructure/database/migrations"
)

const EnvURL = "TEST_DATABASE_URL"

// Open migrates the database named by TEST_DATABASE_URL, empties every
// table and returns a pool closed at test cleanup.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvURL)
	if dsn == "" {
		t.Skipf("Skipping test: %s not set", EnvURL)
	}

	if err := Migrate(dsn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE book_loans, books, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to reset test database: %v", err)
	}

	return pool
}

// Migrate applies all embedded migrations using the lib/pq driver.
func Migrate(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
