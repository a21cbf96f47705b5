package application

import (
	"errors"
	"fmt"

	"tripgenie/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound  = domain.ErrNotFound
	ErrOffline   = domain.ErrOffline
	ErrInvalidID = errors.New("invalid trip ID")

	// ErrNotSynced is returned by server-only operations on a trip the server has not seen yet
	ErrNotSynced = errors.New("trip not synced yet")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OfflineError wraps an operation refused because the device is offline
type OfflineError struct {
	Op string
}

func (e *OfflineError) Error() string {
	return fmt.Sprintf("cannot %s while offline", e.Op)
}

func (e *OfflineError) Is(target error) bool {
	return target == domain.ErrOffline
}
