package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a trip does not exist locally or remotely
	ErrNotFound = errors.New("not found")

	// ErrNotAuthenticated is returned when the remote service answers 401
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOffline is returned by operations that need the network while offline
	ErrOffline = errors.New("offline")
)

// RemoteError is a non-2xx answer from the trips service
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// Is maps 401 and 404 answers onto the matching sentinels
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrNotAuthenticated:
		return e.Status == 401
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}
