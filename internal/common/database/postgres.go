// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"institute-discovery/internal/common/config"

	_ "github.com/lib/pq"
)

// schema is applied in order by EnsureSchema. Every statement is
// idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		unique_id       TEXT PRIMARY KEY,
		category_name   TEXT NOT NULL,
		parent_category TEXT,
		sort_order      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		unique_id        TEXT PRIMARY KEY,
		property_name    TEXT NOT NULL,
		property_slug    TEXT,
		category         TEXT NOT NULL,
		property_city    TEXT NOT NULL DEFAULT '',
		property_state   TEXT NOT NULL DEFAULT '',
		property_country TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'active',
		rank             INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS properties_status_rank_idx ON properties (status, rank)`,
	`CREATE TABLE IF NOT EXISTS enquiries (
		id         UUID PRIMARY KEY,
		listing_id TEXT NOT NULL,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT,
		message    TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// PostgresClient holds the pool shared by the catalog source and the
// enquiry store.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool sized from cfg. The pool is lazy: call
// Ping to verify connectivity.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// EnsureSchema creates the catalog and enquiry tables in one transaction.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
