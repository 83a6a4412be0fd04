package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
)

// ErrDriverUnsupported indicates a storage driver this helper cannot open.
var ErrDriverUnsupported = errors.New("storage: unsupported driver")

// NewSQLiteDB opens a SQLite-backed bun database. Shared in-memory DSNs are
// safe because the pool is capped at a single connection.
func NewSQLiteDB(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewPostgresDB wraps a host-provided PostgreSQL connection. The caller owns
// the underlying sql.DB and its driver registration.
func NewPostgresDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, pgdialect.New())
}

// Connect opens a bun database from storage configuration. Only drivers the
// module can open on its own are supported here; postgres hosts should open
// their own sql.DB and use NewPostgresDB.
func Connect(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite":
		return NewSQLiteDB(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrDriverUnsupported, cfg.Driver)
	}
}
