package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// OpenDB opens the SQLite database at path and runs migrations.
// File databases use WAL, a busy timeout and BEGIN IMMEDIATE so concurrent
// edits queue instead of failing on lock upgrade. ":memory:" is pinned to a
// single connection because every new connection would see an empty
// database.
func OpenDB(path string) (*sql.DB, error) {
	dsn := memoryPath
	if path != memoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		dsn = "file:" + path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=foreign_keys(1)" +
			"&_pragma=busy_timeout(5000)" +
			"&_txlock=immediate"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == memoryPath {
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
