package treecache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/kestrel-lang/kestrel/ast"
	"github.com/kestrel-lang/kestrel/core"
)

// ErrCacheMiss indicates no usable entry exists for the file
var ErrCacheMiss = errors.New("tree cache miss")

// Store keeps encoded trees in a SQLite database keyed by file path.
// Each entry records the content hash it was produced from; a lookup
// with a different hash is a miss, never a stale hit.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// OpenStore opens (creating if needed) the cache database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS trees (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating trees table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put encodes tree and stores it under path, replacing any prior entry.
func (s *Store) Put(gs *core.GlobalState, path, hash string, tree ast.Expression) error {
	data, err := Encode(gs, tree)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO trees (path, hash, data) VALUES (?, ?, ?)",
		path, hash, data,
	)
	if err != nil {
		return fmt.Errorf("saving tree for %s: %w", path, err)
	}
	return nil
}

// Get loads the tree stored for path. A missing entry or one recorded
// under a different content hash returns ErrCacheMiss.
func (s *Store) Get(gs *core.GlobalState, path, hash string) (ast.Expression, error) {
	var storedHash string
	var data []byte
	err := s.db.QueryRow("SELECT hash, data FROM trees WHERE path = ?", path).
		Scan(&storedHash, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("querying tree for %s: %w", path, err)
	}
	if storedHash != hash {
		return nil, ErrCacheMiss
	}
	return Decode(gs, data)
}

// Delete removes the entry for path, if any.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM trees WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting tree for %s: %w", path, err)
	}
	return nil
}

// Paths returns all cached file paths, for diagnostics.
func (s *Store) Paths() ([]string, error) {
	rows, err := s.db.Query("SELECT path FROM trees ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying cached paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
