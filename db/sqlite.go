package db

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/marcus-crane/showscout/migrations"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Open connects to the SQLite database at dsn. ":memory:" works for tests but
// each new connection gets its own database, so the pool is capped at one.
func Open(dsn string) (*sqlx.DB, error) {
	database, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}
	database.SetMaxOpenConns(1)
	slog.Debug("Initialised DB connection", slog.String("dsn", dsn))
	return database, nil
}

// Migrate applies any pending migrations embedded in the binary.
func Migrate(database *sqlx.DB) error {
	goose.SetBaseFS(migrations.GetMigrations())
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return err
	}

	if err := goose.Up(database.DB, migrations.Dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// OpenAndMigrate is the usual startup path for the server and CLI.
func OpenAndMigrate(dsn string) (*sqlx.DB, error) {
	database, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
