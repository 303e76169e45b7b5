// Package dbtest opens a migrated database for repository tests. Tests using
// it are skipped unless TEST_DATABASE_URL is set. Packages share the
// database, so tests must scope their rows with UniqueEmail instead of
// expecting empty tables. Run with -p 1 against a fresh database so two
// packages do not race on the first migration.
package dbtest

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/common/migrations"
)

const envDatabaseURL = "TEST_DATABASE_URL"

func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(envDatabaseURL)
	if url == "" {
		t.Skipf("%s not set", envDatabaseURL)
	}

	ctx := context.Background()
	log := logger.NewWithWriter(io.Discard, "test", "error")
	require.NoError(t, migrations.Up(ctx, log, url))

	pool, err := pgxpool.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func UniqueEmail() string {
	return uuid.NewString() + "@test.everpost"
}
