package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var (
	ErrDialectUnsupported = errors.New("storage: unsupported dialect")
	ErrDSNRequired        = errors.New("storage: dsn is required")
)

// Config names the SQL database backing the bun repositories.
type Config struct {
	Dialect string
	DSN     string
	// MaxOpenConns caps the pool. Zero keeps the driver default; in-memory
	// sqlite databases are pinned to one connection.
	MaxOpenConns int
}

// Open connects to the database and returns a bun.DB using the matching
// dialect. The connection is pinged before returning.
func Open(ctx context.Context, cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Dialect)) {
	case DialectSQLite, "sqlite3":
		sqldb, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		if cfg.MaxOpenConns == 0 && strings.Contains(dsn, "memory") {
			sqldb.SetMaxOpenConns(1)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DialectPostgres, "postgresql", "pg":
		sqldb, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrDialectUnsupported, cfg.Dialect)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables for the given bun models when missing.
func EnsureSchema(ctx context.Context, db bun.IDB, models ...any) error {
	if db == nil {
		return errors.New("storage: database required")
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}
