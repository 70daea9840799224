// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package warehouse migrates staged sports documents into a relational star
// schema. Dimension rows are upserted on their natural keys and fact rows
// reference the resulting surrogate keys, so repeated migrations of the same
// staging data leave the warehouse unchanged.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// Store manages the warehouse database. It runs against SQLite or Postgres;
// the SQL is written in the dialect both accept.
type Store struct {
	db     *sql.DB
	driver types.WarehouseDriver
}

// Open connects to the warehouse named by the configuration.
func Open(cfg types.WarehouseConfig) (*Store, error) {
	var driverName string
	dsn := cfg.DSN
	switch cfg.Driver {
	case types.DriverPostgres:
		driverName = "pgx"
	case types.DriverSQLite:
		driverName = "sqlite3"
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_foreign_keys=on"
		}
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse database: %w", err)
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the star schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.driver) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// dbtx is the subset of *sql.Tx the upsert helpers need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
