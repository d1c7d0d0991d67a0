// ABOUTME: sqlite connection setup for the kindling store
// ABOUTME: Single-writer WAL connection; schema is applied on every open
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// openDSN enables WAL journaling and foreign-key enforcement. Cascading
// deletes of interactions and follow-ups depend on the latter.
const openDSN = "?_journal_mode=WAL&_foreign_keys=on"

// OpenDatabase opens the store at path, creating the file and its parent
// directory when missing, and applies the schema. The pool is capped at
// one connection: sqlite has a single writer, and a second connection
// only surfaces lock errors.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	database, err := sql.Open("sqlite3", path+openDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}
