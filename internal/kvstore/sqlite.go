package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"inspect-cli/internal/anyval"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists settings in a local SQLite database, one row per
// (domain, key). It backs the persisted-settings inspector and any menu
// bindings the host wants to survive restarts.
type SQLiteStore struct {
	db            *sql.DB
	defaultDomain string
}

func OpenSQLite(path, defaultDomain string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when the host also opens the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("kvstore: pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		domain TEXT NOT NULL,
		k      TEXT NOT NULL,
		v      TEXT NOT NULL,
		PRIMARY KEY (domain, k)
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, defaultDomain: defaultDomain}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(key string) (anyval.Value, bool) {
	return s.Lookup(s.defaultDomain, key)
}

func (s *SQLiteStore) Set(key string, value anyval.Value) error {
	return s.SetIn(s.defaultDomain, key, value)
}

func (s *SQLiteStore) SetIn(domain, key string, value anyval.Value) error {
	enc, err := marshalValue(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO settings(domain, k, v) VALUES(?, ?, ?)`, domain, key, enc)
	return err
}

func (s *SQLiteStore) Domains() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT domain FROM settings ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Keys(domain string) ([]string, error) {
	rows, err := s.db.Query(`SELECT k FROM settings WHERE domain = ? ORDER BY k`, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Lookup(domain, key string) (anyval.Value, bool) {
	var enc string
	err := s.db.QueryRow(`SELECT v FROM settings WHERE domain = ? AND k = ?`, domain, key).Scan(&enc)
	if err != nil {
		return nil, false
	}
	v, err := unmarshalValue(enc)
	if err != nil {
		return nil, false
	}
	return v, true
}
