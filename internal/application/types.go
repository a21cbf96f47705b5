package application

import "tripgenie/internal/domain"

// Re-export domain types for use by adapters
type (
	Trip        = domain.Trip
	TripInput   = domain.TripInput
	TripStatus  = domain.TripStatus
	SyncState   = domain.SyncState
	SyncResult  = domain.SyncResult
	SyncStatus  = domain.SyncStatus
	PendingItem = domain.PendingMutation
)

const (
	TripStatusDraft     = domain.TripStatusDraft
	TripStatusPlanned   = domain.TripStatusPlanned
	TripStatusActive    = domain.TripStatusActive
	TripStatusCompleted = domain.TripStatusCompleted
)

// IsLocalID reports whether id was generated on this device and not yet synced
func IsLocalID(id string) bool {
	return domain.IsLocalID(id)
}

// Ptr returns a pointer to v, for building partial TripInput values
func Ptr[T any](v T) *T {
	return domain.Ptr(v)
}
