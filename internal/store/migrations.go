package store

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"shoetracker/migrations"
)

// migrate applies all pending migrations from the embedded SQL files
func migrate(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
