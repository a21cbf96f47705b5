package sqlite

import (
	"context"
	"fmt"
	"slices"

	"tripgenie/internal/domain"
)

// AddPendingMutation enqueues m, coalescing with the entry already queued for its trip
func (s *Store) AddPendingMutation(ctx context.Context, m domain.PendingMutation) (domain.PendingMutation, error) {
	if !m.Kind.Valid() {
		return domain.PendingMutation{}, fmt.Errorf("invalid mutation kind %q", m.Kind)
	}
	if m.TripID == "" {
		return domain.PendingMutation{}, fmt.Errorf("mutation has no trip id")
	}

	var stored domain.PendingMutation
	err := s.update(ctx, func(tx *docTx) error {
		if m.ID == "" {
			m.ID = domain.NewMutationID()
		}
		if m.EnqueuedAt.IsZero() {
			m.EnqueuedAt = tx.now
		}

		pending, err := tx.pending()
		if err != nil {
			return err
		}
		pending, stored = enqueue(pending, m)
		return tx.putPending(pending)
	})
	return stored, err
}

// enqueue folds m into pending, keeping at most one entry per trip
func enqueue(pending []domain.PendingMutation, m domain.PendingMutation) ([]domain.PendingMutation, domain.PendingMutation) {
	i := slices.IndexFunc(pending, func(p domain.PendingMutation) bool { return p.TripID == m.TripID })
	if i < 0 {
		return append(pending, m), m
	}
	merged := domain.Coalesce(pending[i], m)
	pending[i] = merged
	return pending, merged
}

// PendingMutations returns the outbox in enqueue order.
// Read failures are logged and yield an empty slice.
func (s *Store) PendingMutations(ctx context.Context) ([]domain.PendingMutation, error) {
	var pending []domain.PendingMutation
	err := s.view(ctx, func(tx *docTx) error {
		var err error
		pending, err = tx.pending()
		return err
	})
	if err != nil {
		s.logger.Error("failed to load pending mutations", "error", err)
		return []domain.PendingMutation{}, nil
	}
	if pending == nil {
		pending = []domain.PendingMutation{}
	}
	return pending, nil
}

// RemovePendingMutation drops the entry with id. Missing entries are not an error.
func (s *Store) RemovePendingMutation(ctx context.Context, id string) error {
	return s.update(ctx, func(tx *docTx) error {
		pending, err := tx.pending()
		if err != nil {
			return err
		}
		i := indexOfMutation(pending, id)
		if i < 0 {
			return nil
		}
		return tx.putPending(slices.Delete(pending, i, i+1))
	})
}

// IncrementMutationRetry bumps the retry counter of id and returns the new value
func (s *Store) IncrementMutationRetry(ctx context.Context, id string) (int, error) {
	var count int
	err := s.update(ctx, func(tx *docTx) error {
		pending, err := tx.pending()
		if err != nil {
			return err
		}
		i := indexOfMutation(pending, id)
		if i < 0 {
			return fmt.Errorf("mutation %s: %w", id, domain.ErrNotFound)
		}
		pending[i].RetryCount++
		count = pending[i].RetryCount
		return tx.putPending(pending)
	})
	return count, err
}

// ClearPendingMutations empties the outbox
func (s *Store) ClearPendingMutations(ctx context.Context) error {
	return s.update(ctx, func(tx *docTx) error {
		return tx.putPending(nil)
	})
}

// AcknowledgeMutation retires pushed after the server applied it
func (s *Store) AcknowledgeMutation(ctx context.Context, pushed domain.PendingMutation, created *domain.Trip) error {
	return s.update(ctx, func(tx *docTx) error {
		if created != nil {
			if err := tx.rebind(pushed.TripID, *created); err != nil {
				return err
			}
		}

		pending, err := tx.pending()
		if err != nil {
			return err
		}
		i := indexOfMutation(pending, pushed.ID)
		if i < 0 {
			return nil
		}

		current := pending[i]
		if current.EnqueuedAt.Equal(pushed.EnqueuedAt) {
			return tx.putPending(slices.Delete(pending, i, i+1))
		}

		// coalesced while in flight: keep the newer intent
		if current.Kind == domain.MutationCreate && pushed.Kind == domain.MutationCreate {
			current.Kind = domain.MutationUpdate
		}
		current.RetryCount = 0
		pending[i] = current
		return tx.putPending(pending)
	})
}

// rebind swaps the local trip for the created one. A trip deleted locally
// while its create was in flight stays deleted and only its queued delete is
// pointed at the server ID.
func (t *docTx) rebind(localID string, created domain.Trip) error {
	pending, err := t.pending()
	if err != nil {
		return err
	}
	deleted := slices.ContainsFunc(pending, func(p domain.PendingMutation) bool {
		return p.TripID == localID && p.Kind == domain.MutationDelete
	})
	if !deleted {
		return t.replaceTrip(localID, created)
	}

	trips, err := t.trips()
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(trips, func(tr domain.Trip) bool {
		return tr.ID == localID || tr.ID == created.ID
	})
	if err := t.putTrips(kept); err != nil {
		return err
	}
	return t.retarget(localID, created.ID)
}

// retarget points queued mutations for oldID at newID
func (t *docTx) retarget(oldID, newID string) error {
	pending, err := t.pending()
	if err != nil {
		return err
	}

	var moved []domain.PendingMutation
	kept := pending[:0]
	for _, p := range pending {
		if p.TripID == oldID {
			p.TripID = newID
			moved = append(moved, p)
			continue
		}
		kept = append(kept, p)
	}
	if len(moved) == 0 {
		return nil
	}

	for _, p := range moved {
		kept, _ = enqueue(kept, p)
	}
	return t.putPending(kept)
}

func indexOfMutation(pending []domain.PendingMutation, id string) int {
	return slices.IndexFunc(pending, func(p domain.PendingMutation) bool { return p.ID == id })
}
