package syncengine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"tripgenie/internal/domain"
)

const offlineMessage = "No network connection"

// Sync pushes pending mutations and pulls the server state.
//
// A call made while another sync runs, or a non-forced call within
// MinInterval of the previous attempt, returns a zero SyncResult without
// side effects.
func (e *Engine) Sync(ctx context.Context, force bool) domain.SyncResult {
	if !e.syncing.CompareAndSwap(false, true) {
		e.logger.Debug("sync already in progress")
		return domain.SyncResult{}
	}
	defer e.syncing.Store(false)

	now := e.opts.Now()
	e.mu.Lock()
	limited := !force && !e.lastAttempt.IsZero() && now.Sub(e.lastAttempt) < e.opts.MinInterval
	e.mu.Unlock()
	if limited {
		e.logger.Debug("sync rate limited")
		return domain.SyncResult{}
	}

	if !e.net.IsOnline() {
		e.update(func(s *domain.SyncState) {
			s.Status = domain.SyncOffline
			s.Online = false
			s.Error = offlineMessage
		})
		return domain.SyncResult{
			Errors: []domain.SyncFailure{{Error: domain.ErrOffline.Error()}},
		}
	}

	e.mu.Lock()
	e.lastAttempt = now
	e.mu.Unlock()
	e.update(func(s *domain.SyncState) {
		s.Status = domain.SyncSyncing
		s.Online = true
		s.Error = ""
	})

	result := domain.SyncResult{Success: true}
	e.push(ctx, &result)

	if err := e.pull(ctx); err != nil {
		e.logger.Error("sync failed", "error", err)
		result.Success = false
		result.Errors = append(result.Errors, domain.SyncFailure{Error: err.Error()})

		if err := e.store.RecordSync(ctx, domain.OutcomeFailed, e.opts.Now()); err != nil {
			e.logger.Error("failed to record sync", "error", err)
		}
		meta, _ := e.store.SyncMeta(ctx)
		e.update(func(s *domain.SyncState) {
			s.Status = domain.SyncError
			s.Error = err.Error()
			s.PendingCount = meta.PendingCount
		})
		return result
	}

	finished := e.opts.Now()
	outcome := domain.OutcomeSuccess
	if result.Failed > 0 {
		outcome = domain.OutcomePartial
	}
	if err := e.store.RecordSync(ctx, outcome, finished); err != nil {
		e.logger.Error("failed to record sync", "error", err)
	}
	meta, _ := e.store.SyncMeta(ctx)

	e.update(func(s *domain.SyncState) {
		s.LastSyncTime = &finished
		s.PendingCount = meta.PendingCount
		if result.Failed > 0 {
			s.Status = domain.SyncError
			s.Error = fmt.Sprintf("%d items failed to sync", result.Failed)
		} else {
			s.Status = domain.SyncSuccess
			s.Error = ""
		}
	})

	e.logger.Info("sync complete",
		"synced", result.Synced,
		"failed", result.Failed,
		"dropped", result.Dropped,
		"rebound", len(result.Rebound),
	)
	return result
}

// push executes the outbox oldest first, one mutation at a time
func (e *Engine) push(ctx context.Context, result *domain.SyncResult) {
	pending, err := e.store.PendingMutations(ctx)
	if err != nil || len(pending) == 0 {
		return
	}

	slices.SortStableFunc(pending, func(a, b domain.PendingMutation) int {
		return a.EnqueuedAt.Compare(b.EnqueuedAt)
	})
	e.logger.Info("pushing pending mutations", "count", len(pending))

	for _, m := range pending {
		rebound, err := e.execute(ctx, m)
		if err != nil {
			e.fail(ctx, m, err, result)
			continue
		}

		if err := e.acknowledge(ctx, m, rebound); err != nil {
			e.logger.Error("failed to acknowledge mutation", "mutation", m.String(), "error", err)
			result.Failed++
			result.Errors = append(result.Errors, domain.SyncFailure{MutationID: m.ID, Error: err.Error()})
			continue
		}

		result.Synced++
		if rebound != nil {
			result.Rebound = append(result.Rebound, domain.IDRebinding{LocalID: m.TripID, ServerID: rebound.ID})
		}
		e.logger.Debug("mutation synced", "mutation", m.String())
	}
}

// acknowledge retires m and records the rebinding with queue writes held off
func (e *Engine) acknowledge(ctx context.Context, m domain.PendingMutation, rebound *domain.Trip) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.store.AcknowledgeMutation(ctx, m, rebound); err != nil {
		return err
	}
	if rebound != nil {
		e.mu.Lock()
		e.rebinds[m.TripID] = rebound.ID
		e.mu.Unlock()
	}
	return nil
}

// execute applies m remotely. For a create of a local trip it returns the
// server record that replaces the local one.
func (e *Engine) execute(ctx context.Context, m domain.PendingMutation) (*domain.Trip, error) {
	tripID := m.TripID
	if domain.IsLocalID(tripID) && m.Kind != domain.MutationCreate {
		serverID := e.ResolveID(tripID)
		if serverID == tripID {
			// the server never saw this trip
			e.logger.Debug("resolving mutation locally", "mutation", m.String())
			return nil, nil
		}
		tripID = serverID
	}

	var payload domain.TripInput
	if m.Payload != nil {
		payload = *m.Payload
	}

	switch m.Kind {
	case domain.MutationCreate:
		if m.Payload == nil {
			trip, err := e.store.GetTrip(ctx, tripID)
			if err != nil {
				return nil, fmt.Errorf("create without payload: %w", err)
			}
			payload = domain.InputFromTrip(trip)
		}
		created, err := e.api.CreateTrip(ctx, payload)
		if err != nil {
			return nil, err
		}
		if !domain.IsLocalID(tripID) {
			return nil, e.store.SaveTrip(ctx, created)
		}
		return &created, nil

	case domain.MutationUpdate:
		_, err := e.api.UpdateTrip(ctx, tripID, payload)
		return nil, err

	case domain.MutationDelete:
		err := e.api.DeleteTrip(ctx, tripID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return nil, fmt.Errorf("unknown mutation kind %q", m.Kind)
}

// fail counts a failed push and drops the mutation once it hits the retry ceiling
func (e *Engine) fail(ctx context.Context, m domain.PendingMutation, cause error, result *domain.SyncResult) {
	result.Failed++
	result.Errors = append(result.Errors, domain.SyncFailure{MutationID: m.ID, Error: cause.Error()})

	retries, err := e.store.IncrementMutationRetry(ctx, m.ID)
	if err != nil {
		e.logger.Error("failed to record retry", "mutation", m.String(), "error", err)
		return
	}
	if retries < e.opts.MaxRetryCount {
		e.logger.Warn("mutation failed", "mutation", m.String(), "retries", retries, "error", cause)
		return
	}

	e.logger.Warn("mutation exceeded retry limit, dropping", "mutation", m.String(), "retries", retries, "error", cause)
	if err := e.store.RemovePendingMutation(ctx, m.ID); err != nil {
		e.logger.Error("failed to drop mutation", "mutation", m.String(), "error", err)
		return
	}
	result.Dropped++
}

// pull replaces the local trips with the server list plus unsynced local trips.
// An anonymous session skips the pull.
func (e *Engine) pull(ctx context.Context) error {
	server, err := e.api.ListTrips(ctx)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		e.logger.Debug("not authenticated, skipping pull")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch trips: %w", err)
	}

	merged, err := e.ApplyServerTrips(ctx, server)
	if err != nil {
		return err
	}

	e.logger.Info("pulled trips from server", "server", len(server), "merged", len(merged))
	return nil
}

// ApplyServerTrips merges an authoritative trip list into the local store
// and returns the stored result. Trips that only exist locally are kept and
// trips with a queued delete stay hidden.
func (e *Engine) ApplyServerTrips(ctx context.Context, server []domain.Trip) ([]domain.Trip, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	local, err := e.store.LoadTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local trips: %w", err)
	}
	pending, err := e.store.PendingMutations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending mutations: %w", err)
	}
	merged := domain.MergeTrips(local, withoutQueuedDeletes(server, pending))
	if err := e.store.SaveTrips(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save merged trips: %w", err)
	}
	return merged, nil
}

// withoutQueuedDeletes drops server trips the user deleted locally whose
// delete has not reached the server yet
func withoutQueuedDeletes(server []domain.Trip, pending []domain.PendingMutation) []domain.Trip {
	deleted := make(map[string]struct{})
	for _, p := range pending {
		if p.Kind == domain.MutationDelete {
			deleted[p.TripID] = struct{}{}
		}
	}
	if len(deleted) == 0 {
		return server
	}

	out := make([]domain.Trip, 0, len(server))
	for _, t := range server {
		if _, ok := deleted[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}
