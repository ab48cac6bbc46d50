// Package cache is a content-addressed compile cache over sqlite. Keys
// cover the source bytes and the configuration fingerprint, so a hit is
// byte-identical to what generation would emit.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	key        TEXT PRIMARY KEY,
	output     BLOB NOT NULL,
	created_at INTEGER NOT NULL
);`

// Store is an open cache database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Key derives the cache key for a source text under a configuration
// fingerprint.
func Key(source []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for key, if present.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var output []byte
	err := s.db.QueryRow("SELECT output FROM artifacts WHERE key = ?", key).Scan(&output)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return output, true, nil
}

// Put stores output under key, replacing any previous entry.
func (s *Store) Put(key string, output []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO artifacts (key, output, created_at) VALUES (?, ?, ?)",
		key, output, time.Now().Unix(),
	)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
