package domain

import (
	"fmt"
	"time"
)

// MutationKind is the kind of a queued write
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Valid reports whether k is a known mutation kind
func (k MutationKind) Valid() bool {
	switch k {
	case MutationCreate, MutationUpdate, MutationDelete:
		return true
	}
	return false
}

// PendingMutation is a queued intent to change server state.
// The outbox holds at most one PendingMutation per TripID.
type PendingMutation struct {
	ID         string       `json:"id"`
	Kind       MutationKind `json:"kind"`
	TripID     string       `json:"trip_id"`
	Payload    *TripInput   `json:"payload,omitempty"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
	RetryCount int          `json:"retry_count"`
}

// NewMutation builds a fresh outbox entry
func NewMutation(kind MutationKind, tripID string, payload *TripInput, now time.Time) PendingMutation {
	return PendingMutation{
		ID:         NewMutationID(),
		Kind:       kind,
		TripID:     tripID,
		Payload:    payload,
		EnqueuedAt: now,
	}
}

func (m PendingMutation) String() string {
	return fmt.Sprintf("%s %s (%s)", m.Kind, m.TripID, m.ID)
}

// Coalesce folds incoming into the mutation already queued for the same trip.
//
//	existing  incoming        result
//	any       delete          incoming (delete wins)
//	create    update          create, payload merged, timestamp refreshed
//	update    update          update, payload merged, timestamp refreshed
//	delete    create/update   incoming
func Coalesce(existing, incoming PendingMutation) PendingMutation {
	if incoming.Kind == MutationDelete {
		return incoming
	}

	if incoming.Kind == MutationUpdate &&
		(existing.Kind == MutationCreate || existing.Kind == MutationUpdate) {
		merged := existing
		merged.Payload = mergePayload(existing.Payload, incoming.Payload)
		merged.EnqueuedAt = incoming.EnqueuedAt
		return merged
	}

	return incoming
}

func mergePayload(base, next *TripInput) *TripInput {
	switch {
	case base == nil && next == nil:
		return nil
	case base == nil:
		out := *next
		return &out
	case next == nil:
		out := *base
		return &out
	}
	out := base.Merge(*next)
	return &out
}
