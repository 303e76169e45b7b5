// Package migrations owns the database schema. The SQL files are embedded
// and applied with goose at startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/WooodHead/everpost-backend/internal/common/logger"
)

//go:embed sql/*.sql
var files embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

var openDB = func(databaseURL string) (*sql.DB, error) {
	return sql.Open("pgx", databaseURL)
}

// Up applies every pending migration.
func Up(ctx context.Context, log *logger.Logger, databaseURL string) error {
	db, err := openDB(databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return run(ctx, log, db)
}

func run(ctx context.Context, log *logger.Logger, db *sql.DB) error {
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "sql"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.WithFields(ctx, logger.Fields{"action": "migrations"}).Info("database schema is up to date")
	return nil
}
