// Package sqlite implements the durable local store on top of SQLite.
//
// The store keeps three JSON documents (trips, pending mutations, sync
// metadata) in a single key/value table. Every operation runs in one
// transaction on a single connection, so read-modify-write sequences are
// serialized.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Document keys
const (
	keyTrips            = "trips"
	keyPendingMutations = "pending_mutations"
	keySyncMeta         = "sync_meta"
)

// Store implements ports.LocalStore using SQLite
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time

	// serializes transactions; the pool holds a single connection anyway
	mu sync.Mutex
}

// Ensure Store implements LocalStore
var _ ports.LocalStore = (*Store)(nil)

// Open opens (creating if needed) the store at path
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the meta table
func (s *Store) SchemaVersion(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	return version, err
}

// update runs fn in a write transaction
func (s *Store) update(ctx context.Context, fn func(*docTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	dtx := &docTx{tx: tx, ctx: ctx, logger: s.logger, now: s.now()}

	if err := fn(dtx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// view runs fn in a transaction that is always rolled back
func (s *Store) view(ctx context.Context, fn func(*docTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&docTx{tx: tx, ctx: ctx, logger: s.logger, now: s.now()})
}

// ClearAll removes every document
func (s *Store) ClearAll(ctx context.Context) error {
	return s.update(ctx, func(tx *docTx) error {
		return tx.deleteAll()
	})
}

// Stats returns a snapshot of what is stored
func (s *Store) Stats(ctx context.Context) (domain.StorageStats, error) {
	var stats domain.StorageStats
	err := s.view(ctx, func(tx *docTx) error {
		trips, err := tx.trips()
		if err != nil {
			return err
		}
		pending, err := tx.pending()
		if err != nil {
			return err
		}
		meta, err := tx.syncMeta()
		if err != nil {
			return err
		}
		stats = domain.StorageStats{
			TripCount:        len(trips),
			PendingMutations: len(pending),
			LastSync:         meta.LastSyncTime,
		}
		return nil
	})
	return stats, err
}
