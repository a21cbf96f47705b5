package syncengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripgenie/internal/domain"
)

// QueueCreate stores trip locally and enqueues its creation
func (e *Engine) QueueCreate(ctx context.Context, trip domain.Trip) error {
	e.writeMu.Lock()
	err := e.queueCreate(ctx, trip)
	e.writeMu.Unlock()
	if err != nil {
		return err
	}
	e.refreshPending(ctx)
	return nil
}

func (e *Engine) queueCreate(ctx context.Context, trip domain.Trip) error {
	if err := e.store.SaveTrip(ctx, trip); err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}
	payload := domain.InputFromTrip(trip)
	m := domain.NewMutation(domain.MutationCreate, trip.ID, &payload, e.opts.Now())
	if _, err := e.store.AddPendingMutation(ctx, m); err != nil {
		return fmt.Errorf("failed to queue create: %w", err)
	}
	e.logger.Debug("queued create", "trip_id", trip.ID)
	return nil
}

// QueueUpdate applies in to the stored trip and enqueues the change.
// A local ID that was already rebound is redirected to the server ID.
func (e *Engine) QueueUpdate(ctx context.Context, id string, in domain.TripInput) error {
	e.writeMu.Lock()
	err := e.queueUpdate(ctx, e.ResolveID(id), in)
	e.writeMu.Unlock()
	if err != nil {
		return err
	}
	e.refreshPending(ctx)
	return nil
}

func (e *Engine) queueUpdate(ctx context.Context, id string, in domain.TripInput) error {
	trip, err := e.store.GetTrip(ctx, id)
	switch {
	case err == nil:
		if err := e.store.SaveTrip(ctx, in.Apply(trip)); err != nil {
			return fmt.Errorf("failed to save trip: %w", err)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("failed to load trip: %w", err)
	}

	payload := in
	m := domain.NewMutation(domain.MutationUpdate, id, &payload, e.opts.Now())
	if _, err := e.store.AddPendingMutation(ctx, m); err != nil {
		return fmt.Errorf("failed to queue update: %w", err)
	}
	e.logger.Debug("queued update", "trip_id", id)
	return nil
}

// QueueDelete removes the trip locally and enqueues its deletion.
// A local ID that was already rebound is redirected to the server ID.
func (e *Engine) QueueDelete(ctx context.Context, id string) error {
	e.writeMu.Lock()
	err := e.queueDelete(ctx, e.ResolveID(id))
	e.writeMu.Unlock()
	if err != nil {
		return err
	}
	e.refreshPending(ctx)
	return nil
}

func (e *Engine) queueDelete(ctx context.Context, id string) error {
	if err := e.store.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	m := domain.NewMutation(domain.MutationDelete, id, nil, e.opts.Now())
	if _, err := e.store.AddPendingMutation(ctx, m); err != nil {
		return fmt.Errorf("failed to queue delete: %w", err)
	}
	e.logger.Debug("queued delete", "trip_id", id)
	return nil
}

// ClearPending empties the outbox without syncing it
func (e *Engine) ClearPending(ctx context.Context) error {
	e.writeMu.Lock()
	err := e.store.ClearPendingMutations(ctx)
	e.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to clear pending mutations: %w", err)
	}
	e.logger.Info("cleared pending mutations")
	e.refreshPending(ctx)
	return nil
}

// ClearAll wipes local data and resets the sync state (logout)
func (e *Engine) ClearAll(ctx context.Context) error {
	e.writeMu.Lock()
	err := e.store.ClearAll(ctx)
	e.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}

	e.mu.Lock()
	clear(e.rebinds)
	e.lastAttempt = time.Time{}
	e.mu.Unlock()

	online := e.net.IsOnline()
	e.update(func(s *domain.SyncState) {
		*s = domain.SyncState{Status: domain.SyncIdle, Online: online}
	})
	e.logger.Info("cleared local data")
	return nil
}

// CacheTrip stores a trip the server just returned, without queueing anything
func (e *Engine) CacheTrip(ctx context.Context, trip domain.Trip) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.store.SaveTrip(ctx, trip)
}

// UncacheTrip removes a trip the server just deleted, without queueing anything
func (e *Engine) UncacheTrip(ctx context.Context, id string) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.store.DeleteTrip(ctx, id)
}
