// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/movie-night/cliparse"
	"github.com/danielhkuo/movie-night/store"
)

// Open connects to the configured backend, prepares its schema or indexes
// and returns it as a store.Store.
func Open(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		s, err := store.NewMongoStore(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		slog.Info("mongo store ready", "database", cfg.MongoDatabase)
		return s, nil

	case cliparse.DatabasePostgres, cliparse.DatabaseSQLite:
		conn, err := OpenSQL(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := CreateSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
		slog.Info("database schema ready", "type", cfg.DatabaseType)
		return store.NewSQLStore(conn, cfg.DatabaseType), nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// OpenSQL opens and pings a database/sql pool for the given dialect.
// SQLite gets a single connection so writers never contend for the file lock.
func OpenSQL(ctx context.Context, dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if dialect == store.DialectSQLite {
		conn.SetMaxOpenConns(1)
		if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}
