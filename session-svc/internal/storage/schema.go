package storage

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS user_groups (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id INT NOT NULL REFERENCES user_groups(id) ON DELETE CASCADE,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		phone_number VARCHAR(16) NOT NULL,
		owner_id INT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS restaurant_tags (
		restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		tag_id INT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (restaurant_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		item_type TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		price NUMERIC(8,2) NOT NULL CHECK (price > 0),
		currency VARCHAR(3) NOT NULL DEFAULT 'PLN'
	)`,
	`CREATE TABLE IF NOT EXISTS meal_sessions (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		restaurant_id INT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		creator_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		delivery_time TIMESTAMPTZ NOT NULL,
		order_deadline TIMESTAMPTZ NOT NULL,
		email_sent BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS meal_sessions_due_idx
		ON meal_sessions (order_deadline) WHERE email_sent = FALSE`,
	`CREATE TABLE IF NOT EXISTS session_participants (
		session_id INT NOT NULL REFERENCES meal_sessions(id) ON DELETE CASCADE,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (session_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		session_id INT NOT NULL REFERENCES meal_sessions(id) ON DELETE CASCADE,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		payment_method VARCHAR(10) NOT NULL DEFAULT 'Cash',
		total_price NUMERIC(10,2) NOT NULL DEFAULT 0,
		CONSTRAINT orders_session_user_key UNIQUE (session_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_item_id INT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		quantity INT NOT NULL CHECK (quantity > 0),
		note TEXT
	)`,
}

// EnsureSchema creates the tables the repository needs. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
