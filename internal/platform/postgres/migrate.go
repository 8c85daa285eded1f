package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"yap-backend/internal/platform/postgres/migrations"
)

var gooseOnce sync.Once

// gooseRun is a seam for testing goose.RunContext.
var gooseRun = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
	return goose.RunContext(ctx, command, db, dir, args...)
}

func setupGoose() error {
	var err error
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations.Migrations)
		err = goose.SetDialect("postgres")
	})
	return err
}

// Migrate runs a goose command ("up", "down", "status", "version", "redo",
// "up-to", "down-to") against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	switch command {
	case "up", "down", "status", "version", "redo", "up-to", "down-to":
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if err := setupGoose(); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	if err := gooseRun(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
