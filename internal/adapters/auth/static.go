// Package auth provides credential providers for the remote trips service.
package auth

import (
	"context"
	"net/http"

	"tripgenie/internal/ports"
)

// Static serves a fixed bearer token and user id.
// An empty token is an anonymous session: no Authorization header is sent.
type Static struct {
	token  string
	userID string
}

// Ensure Static implements Credentials
var _ ports.Credentials = (*Static)(nil)

// NewStatic returns a provider for token and userID
func NewStatic(token, userID string) *Static {
	return &Static{token: token, userID: userID}
}

// Anonymous returns a provider with no session
func Anonymous() *Static {
	return &Static{}
}

// AuthHeaders returns the headers to attach to every request
func (s *Static) AuthHeaders(ctx context.Context) (http.Header, error) {
	h := http.Header{}
	if s.token != "" {
		h.Set("Authorization", "Bearer "+s.token)
	}
	return h, nil
}

// CurrentUserID returns the configured user id, "" when anonymous
func (s *Static) CurrentUserID() string {
	return s.userID
}

// Authenticated reports whether a token is configured
func (s *Static) Authenticated() bool {
	return s.token != ""
}
