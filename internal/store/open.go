package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenValues opens the value repository for driver: memory, sqlite or
// postgres. The returned close func releases the database, if any.
func OpenValues(ctx context.Context, driver, dsn string) (ValueRepository, func() error, error) {
	noop := func() error { return nil }

	var (
		sqlDriver string
		dialect   func(*sql.DB) *bun.DB
	)
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory":
		return NewMemoryValues(), noop, nil
	case "sqlite":
		sqlDriver = "sqlite3"
		dialect = func(db *sql.DB) *bun.DB { return bun.NewDB(db, sqlitedialect.New()) }
	case "postgres":
		sqlDriver = "postgres"
		dialect = func(db *sql.DB) *bun.DB { return bun.NewDB(db, pgdialect.New()) }
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	sqlDB, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, noop, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, noop, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	db := dialect(sqlDB)
	repo := NewBunValues(db)
	if err := repo.CreateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, noop, fmt.Errorf("store: create schema: %w", err)
	}
	return repo, db.Close, nil
}
