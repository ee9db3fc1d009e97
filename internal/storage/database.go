package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// The mirror is written by a single build at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the mirror tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			slug TEXT PRIMARY KEY,
			position INTEGER NOT NULL UNIQUE,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			search_text TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS headings (
			page_slug TEXT NOT NULL,
			position INTEGER NOT NULL,
			level INTEGER NOT NULL,
			text TEXT NOT NULL,
			anchor_id TEXT NOT NULL,
			PRIMARY KEY (page_slug, position),
			FOREIGN KEY (page_slug) REFERENCES pages(slug) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return nil
}
