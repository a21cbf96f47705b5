package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	s := NewStatic("tok-123", "user-1")

	h, err := s.AuthHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", h.Get("Authorization"))
	assert.Equal(t, "user-1", s.CurrentUserID())
	assert.True(t, s.Authenticated())
}

func TestAnonymous(t *testing.T) {
	s := Anonymous()

	h, err := s.AuthHeaders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h.Get("Authorization"))
	assert.Empty(t, s.CurrentUserID())
	assert.False(t, s.Authenticated())
}
