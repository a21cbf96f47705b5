package ports

import (
	"context"
	"time"

	"tripgenie/internal/domain"
)

// TripStore persists the local trip collection.
// The collection is read and written as a whole document.
type TripStore interface {
	// LoadTrips returns every cached trip. Read failures yield an empty slice.
	LoadTrips(ctx context.Context) ([]domain.Trip, error)
	SaveTrips(ctx context.Context, trips []domain.Trip) error

	// SaveTrip upserts by ID; unknown trips are prepended
	SaveTrip(ctx context.Context, trip domain.Trip) error
	DeleteTrip(ctx context.Context, id string) error

	// GetTrip returns domain.ErrNotFound when no trip has that ID
	GetTrip(ctx context.Context, id string) (domain.Trip, error)

	// ReplaceTrip swaps the record stored under oldID for trip in one step.
	// Queued mutations for oldID are retargeted to trip.ID.
	ReplaceTrip(ctx context.Context, oldID string, trip domain.Trip) error
}

// OutboxStore persists the pending-mutation queue
type OutboxStore interface {
	// AddPendingMutation enqueues m, coalescing with any entry already queued
	// for the same trip. It returns the entry as stored.
	AddPendingMutation(ctx context.Context, m domain.PendingMutation) (domain.PendingMutation, error)
	PendingMutations(ctx context.Context) ([]domain.PendingMutation, error)
	RemovePendingMutation(ctx context.Context, id string) error

	// AcknowledgeMutation retires a mutation the server has applied.
	// When created is set, the local trip pushed.TripID is replaced by created
	// and queued entries are retargeted, in the same step. An entry that was
	// coalesced after it was read is kept: a pushed create turns into an
	// update carrying the merged payload.
	AcknowledgeMutation(ctx context.Context, pushed domain.PendingMutation, created *domain.Trip) error

	// IncrementMutationRetry returns the new retry count
	IncrementMutationRetry(ctx context.Context, id string) (int, error)
	ClearPendingMutations(ctx context.Context) error
}

// MetaStore persists sync bookkeeping
type MetaStore interface {
	SyncMeta(ctx context.Context) (domain.SyncMeta, error)
	RecordSync(ctx context.Context, outcome domain.SyncOutcome, at time.Time) error
}

// LocalStore is the durable store used by the sync engine and the facade
type LocalStore interface {
	TripStore
	OutboxStore
	MetaStore

	// ClearAll wipes trips, outbox and metadata (logout/reset)
	ClearAll(ctx context.Context) error
	Stats(ctx context.Context) (domain.StorageStats, error)
	Close() error
}
