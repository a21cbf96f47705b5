package ports

import (
	"context"
	"net/http"
)

// Credentials is the opaque session provider.
// The core attaches its headers to every request and never inspects them.
type Credentials interface {
	AuthHeaders(ctx context.Context) (http.Header, error)

	// CurrentUserID returns "" for anonymous sessions
	CurrentUserID() string
}
