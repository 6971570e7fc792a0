package migrations

// This Go migration replaces a SQL version because the name column type
// differs by database driver: MySQL cannot index an unbounded TEXT primary
// key, so it gets VARCHAR(191) (the InnoDB utf8mb4 index limit).

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAppState, downCreateAppState)
}

func upCreateAppState(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS app_state (
    name       TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS app_state (
    name       VARCHAR(191) PRIMARY KEY,
    value      MEDIUMTEXT NOT NULL,
    updated_at TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS app_state (
    name       TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create app_state table: %w", err)
	}
	return nil
}

func downCreateAppState(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS app_state`)
	return err
}
