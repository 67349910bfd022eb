package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Options describes how to reach the backing store of one service.
type Options struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens a pool for the configured driver and verifies it with a ping.
func Connect(ctx context.Context, opts Options) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, nil, err
	}

	if opts.URL == "" {
		return nil, nil, fmt.Errorf("database url is empty")
	}

	dsn, err := dialect.NormalizeDSN(opts.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid database url: %w", err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, dialect, nil
}
