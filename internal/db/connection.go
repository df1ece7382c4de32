// Package db wraps the PostgreSQL pool used to read back-office tables.
// mfin never writes: every session is put into read-only mode on connect.
package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/mfin/internal/util"
)

// DB holds the database connection pool
type DB struct {
	pool *pgxpool.Pool
	url  string
	mu   sync.RWMutex
}

// sessionSettings are applied to every new connection.
var sessionSettings = []string{
	"SET default_transaction_read_only = on",
	"SET statement_timeout = '30s'",
	"SET application_name = 'mfin'",
}

func applySessionSettings(ctx context.Context, conn *pgx.Conn) error {
	for _, s := range sessionSettings {
		if _, err := conn.Exec(ctx, s); err != nil {
			return fmt.Errorf("failed to apply %q: %w", s, err)
		}
	}
	return nil
}

// Connect establishes a connection to the database with a full connection pool
func Connect(ctx context.Context, url string) (*DB, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	config.MaxConns = 8
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.AfterConnect = applySessionSettings

	return open(ctx, url, config)
}

// ConnectLite establishes a lightweight connection (single connection, no pool)
// Use this for one-shot listings like `mfin view --raw`.
func ConnectLite(ctx context.Context, url string) (*DB, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	config.MaxConns = 1
	config.MinConns = 0
	config.MaxConnLifetime = time.Minute
	config.MaxConnIdleTime = 10 * time.Second
	config.AfterConnect = applySessionSettings

	return open(ctx, url, config)
}

func open(ctx context.Context, url string, config *pgxpool.Config) (*DB, error) {
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, url: url}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.pool != nil {
		db.pool.Close()
		db.pool = nil
	}
}

// Query executes a query and returns rows
func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.mu.RLock()
	pool := db.pool
	db.mu.RUnlock()
	if pool == nil {
		return nil, util.ErrNotConnected
	}
	return pool.Query(ctx, sql, args...)
}

// URL returns the connection URL
func (db *DB) URL() string {
	return db.url
}

// IsConnected returns true if the database is connected
func (db *DB) IsConnected() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.pool != nil
}
