package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database connection and configures pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set pragmas for performance and correctness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}

// Handle owns the process-wide database connection. Lifecycle (open, close,
// reopen after restore) is explicit here instead of hiding behind package
// globals; everything that needs the store receives the Handle.
type Handle struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// OpenHandle opens the database at path, applies the schema, and wraps the
// connection in a Handle.
func OpenHandle(path string) (*Handle, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Handle{db: db, path: path}, nil
}

// DB returns the current underlying connection.
func (h *Handle) DB() *sql.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.db
}

// Path returns the database file path.
func (h *Handle) Path() string {
	return h.path
}

// Close closes the underlying connection.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.Close()
}

// reopen swaps in a fresh connection to the same path. Caller must hold mu.
func (h *Handle) reopen() error {
	db, err := Open(h.path)
	if err != nil {
		return err
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return err
	}
	h.db = db
	return nil
}
