package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      VARCHAR(150) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS news (
    id         SERIAL PRIMARY KEY,
    title      VARCHAR(250) NOT NULL,
    text       TEXT NOT NULL,
    date       DATE NOT NULL DEFAULT CURRENT_DATE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS comments (
    id         SERIAL PRIMARY KEY,
    news_id    INTEGER NOT NULL REFERENCES news(id) ON DELETE CASCADE,
    author_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    text       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS notes (
    id         SERIAL PRIMARY KEY,
    title      VARCHAR(100) NOT NULL,
    text       TEXT NOT NULL,
    slug       VARCHAR(100) NOT NULL UNIQUE,
    author_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	// home page: ORDER BY date DESC
	`CREATE INDEX IF NOT EXISTS idx_news_date ON news(date DESC, id DESC)`,
	// detail page: comments of one news item in creation order
	`CREATE INDEX IF NOT EXISTS idx_comments_news_created ON comments(news_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_author ON notes(author_id)`,
}

// MigrateUp creates the schema. Every statement is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}

// MigrateDown drops every table in dependency order.
// Use with caution: this deletes all data.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"comments", "notes", "news", "users"} {
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return fmt.Errorf("migrate down %s: %w", table, err)
		}
	}
	return nil
}
