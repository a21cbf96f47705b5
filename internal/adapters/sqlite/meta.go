package sqlite

import (
	"context"
	"time"

	"tripgenie/internal/domain"
)

// SyncMeta returns the persisted sync bookkeeping.
// Read failures are logged and yield the zero value.
func (s *Store) SyncMeta(ctx context.Context) (domain.SyncMeta, error) {
	var meta domain.SyncMeta
	err := s.view(ctx, func(tx *docTx) error {
		var err error
		meta, err = tx.syncMeta()
		return err
	})
	if err != nil {
		s.logger.Error("failed to load sync metadata", "error", err)
		return domain.SyncMeta{}, nil
	}
	return meta, nil
}

// RecordSync stores the outcome and time of a sync attempt
func (s *Store) RecordSync(ctx context.Context, outcome domain.SyncOutcome, at time.Time) error {
	return s.update(ctx, func(tx *docTx) error {
		meta, err := tx.syncMeta()
		if err != nil {
			return err
		}
		pending, err := tx.pending()
		if err != nil {
			return err
		}
		meta.LastSyncTime = &at
		meta.LastSyncStatus = outcome
		meta.PendingCount = len(pending)
		return tx.put(keySyncMeta, meta)
	})
}
