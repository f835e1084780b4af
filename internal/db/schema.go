package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schema is applied at startup; statements are idempotent. change_logs keeps
// item_id nullable with ON DELETE SET NULL so terminal deletion entries
// survive the removal of their item.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		price NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		date_added TIMESTAMPTZ NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS change_logs (
		id SERIAL PRIMARY KEY,
		item_id INTEGER REFERENCES items(id) ON DELETE SET NULL,
		item_name TEXT NOT NULL,
		owner_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		field_changed TEXT NOT NULL,
		change_type TEXT NOT NULL,
		old_value NUMERIC(12,2) NOT NULL,
		new_value NUMERIC(12,2) NOT NULL,
		quantity_changed INTEGER,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_change_logs_item ON change_logs(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_change_logs_owner ON change_logs(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_change_logs_created ON change_logs(created_at)`,
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
