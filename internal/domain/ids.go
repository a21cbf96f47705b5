package domain

import (
	"strings"

	"github.com/google/uuid"
)

// LocalIDPrefix marks trip IDs generated on the device
const LocalIDPrefix = "local_"

// NewLocalID returns a fresh locally generated trip ID
func NewLocalID() string {
	return LocalIDPrefix + uuid.NewString()
}

// IsLocalID reports whether id was generated on the device
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// NewMutationID returns a fresh outbox entry ID
func NewMutationID() string {
	return "mutation_" + uuid.NewString()
}
