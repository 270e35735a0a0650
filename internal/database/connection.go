package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/wordquiz/internal/config"
)

// Connect opens the session database and creates the schema if needed
func Connect(cfg config.Database) (*sqlx.DB, error) {
	if cfg.Driver == "sqlite3" {
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if cfg.Driver == "sqlite3" {
		// SQLite doesn't support multiple writers, and an in-memory
		// database only lives as long as its single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDataDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS quiz_sessions (
			chat_id BIGINT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create quiz_sessions table: %v", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_updated_at ON quiz_sessions (updated_at)`)
	if err != nil {
		return fmt.Errorf("failed to create quiz_sessions index: %v", err)
	}

	return nil
}
