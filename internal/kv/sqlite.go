package kv

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore backs a fixture with a single-table SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite creates a fresh SQLite-backed store at path.
//
// The database is configured with:
//   - page_size from Options.BlockSize (must be set before any table exists,
//     which a fresh database guarantees)
//   - synchronous = FULL in numeric-sync mode, NORMAL otherwise
//   - a single kv(key PRIMARY KEY, value) table
//
// SQLite only supports one writer at a time, so the connection pool is
// limited to a single connection.
func OpenSQLite(path string, opts Options) (Store, error) {
	if err := truncate(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to sqlite store: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	sync := "NORMAL"
	if opts.NumericSync {
		sync = "FULL"
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA page_size = %d", opts.blockSize()),
		fmt.Sprintf("PRAGMA synchronous = %s", sync),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE kv (key BLOB PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	if err := os.Chmod(path, opts.fileMode()); err != nil {
		db.Close()
		return nil, fmt.Errorf("set store permissions: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Store(key, value []byte) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("store key %q: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) Count() (uint64, error) {
	var count uint64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
