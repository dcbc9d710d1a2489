// Package sqlite stores tradingpost documents in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a document backend over a single SQLite table.
type DB struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// a single connection serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	log.Printf("[sqlite] opened database at %s", path)
	return &DB{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT    PRIMARY KEY,
			data       BLOB    NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	return err
}

// Close closes the database.
func (d *DB) Close() error { return d.db.Close() }

// Get reads the document key, or returns an error matching fs.ErrNotExist.
func (d *DB) Get(key string) ([]byte, error) {
	var data []byte
	err := d.db.QueryRow(`SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite document %q: %w", key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get %q: %w", key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Put inserts or replaces the document key in a single statement.
func (d *DB) Put(key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := d.db.Exec(`
		INSERT INTO documents (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite put %q: %w", key, err)
	}
	return nil
}
