package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tripgenie/internal/domain"
)

// docTx reads and writes whole documents inside one transaction
type docTx struct {
	tx     *sql.Tx
	ctx    context.Context
	logger *slog.Logger
	now    time.Time
}

// get decodes the document at key into v. It reports false when the key is absent.
// A document that no longer decodes is logged and treated as absent.
func (t *docTx) get(key string, v any) (bool, error) {
	var raw string
	err := t.tx.QueryRowContext(t.ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.logger.Error("discarding unreadable document", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// put replaces the document at key
func (t *docTx) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = t.tx.ExecContext(t.ctx, `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), t.now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (t *docTx) deleteAll() error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM documents`)
	return err
}

func (t *docTx) trips() ([]domain.Trip, error) {
	var trips []domain.Trip
	if _, err := t.get(keyTrips, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (t *docTx) putTrips(trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}
	return t.put(keyTrips, trips)
}

func (t *docTx) pending() ([]domain.PendingMutation, error) {
	var pending []domain.PendingMutation
	if _, err := t.get(keyPendingMutations, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// putPending stores the outbox and keeps pending_count in step with it
func (t *docTx) putPending(pending []domain.PendingMutation) error {
	if pending == nil {
		pending = []domain.PendingMutation{}
	}
	if err := t.put(keyPendingMutations, pending); err != nil {
		return err
	}
	meta, err := t.syncMeta()
	if err != nil {
		return err
	}
	meta.PendingCount = len(pending)
	return t.put(keySyncMeta, meta)
}

func (t *docTx) syncMeta() (domain.SyncMeta, error) {
	var meta domain.SyncMeta
	if _, err := t.get(keySyncMeta, &meta); err != nil {
		return domain.SyncMeta{}, err
	}
	return meta, nil
}
