package postgres

import (
	"context"
	"fmt"

	"posledger/pkg/logger"
)

// Documents live as whole JSONB values, one row per document. Collections
// are read in full on every ledger query, so there is no per-column schema
// to keep in sync with the model; seq preserves insertion order for the
// newest-first listing contract.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pos_items (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_purchases (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_stock_returns (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_sales (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_sale_returns (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_users (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		doc        JSONB NOT NULL,
		seq        BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pos_changelog (
		id                  TEXT PRIMARY KEY,
		collection          TEXT NOT NULL,
		entity_id           TEXT NOT NULL,
		action              TEXT NOT NULL,
		snapshot            JSONB,
		snapshot_compressed BYTEA,
		compression_algo    TEXT NOT NULL DEFAULT 'none',
		user_id             TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_changelog_entity
		ON pos_changelog (collection, entity_id, created_at)`,
}

// Migrate creates the schema if missing. Statements are idempotent; running
// against an existing database is a no-op.
func Migrate(ctx context.Context, pool *Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Info(ctx, "schema migrated", "statements", len(schema))
	return nil
}
