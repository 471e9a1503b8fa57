package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens a database connection and initializes the schema. Supported
// drivers are sqlite3 (the default, local file) and postgres. The returned
// handle is passed to the repositories explicitly; there is no package-level
// connection.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite3" {
		// Create the data directory for a file-backed database
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates the tables if they don't exist. Timestamps are
// stored as unix milliseconds so records round-trip exactly on every driver.
func initializeSchema(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS study_items (
			id TEXT PRIMARY KEY,
			vocab_id TEXT NOT NULL,
			word TEXT NOT NULL,
			interval INTEGER NOT NULL DEFAULT 1,
			ease_factor REAL NOT NULL DEFAULT 2.5,
			repetitions INTEGER NOT NULL DEFAULT 0,
			next_review_ms BIGINT NOT NULL,
			last_review_ms BIGINT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'medium',
			quality INTEGER NOT NULL DEFAULT 0,
			correct_streak INTEGER NOT NULL DEFAULT 0,
			total_attempts INTEGER NOT NULL DEFAULT 0,
			correct_attempts INTEGER NOT NULL DEFAULT 0
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS review_sessions (
			seq %s,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			start_ms BIGINT NOT NULL,
			end_ms BIGINT,
			mode TEXT NOT NULL,
			total_questions INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			duration_ms BIGINT NOT NULL,
			results TEXT NOT NULL
		)`, serial),
		`CREATE TABLE IF NOT EXISTS vocabulary (
			id TEXT PRIMARY KEY,
			word TEXT NOT NULL UNIQUE,
			translation TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'saved',
			practice_score INTEGER NOT NULL DEFAULT 0,
			added_at_ms BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stats_cache (
			cache_key TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_study_items_next_review ON study_items(next_review_ms)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
