package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_HappyPath(t *testing.T) {
	s := New()
	assert.Equal(t, StateAnonymous, s.State())

	require.NoError(t, s.SignedIn("ada@example.com"))
	assert.Equal(t, StateNeedsProfile, s.State())
	assert.Equal(t, "ada@example.com", s.Email())

	require.NoError(t, s.ProfileLoaded("Ada", true))
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, "Ada", s.DisplayName())
	assert.True(t, s.IsAdmin())

	require.NoError(t, s.SignedOut())
	assert.Equal(t, StateAnonymous, s.State())
	assert.Empty(t, s.Email())
	assert.Empty(t, s.DisplayName())
	assert.False(t, s.IsAdmin())
}

func TestSession_ProfileCreated(t *testing.T) {
	s := New()
	require.NoError(t, s.SignedIn("bob@example.com"))
	require.NoError(t, s.ProfileCreated("Bob", false))
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, "Bob", s.DisplayName())
	assert.False(t, s.IsAdmin())
}

func TestSession_IllegalTransitions(t *testing.T) {
	t.Run("sign in twice", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SignedIn("ada@example.com"))
		assert.Error(t, s.SignedIn("ada@example.com"))
	})

	t.Run("activate while anonymous", func(t *testing.T) {
		s := New()
		assert.Error(t, s.ProfileLoaded("Ada", false))
		assert.Error(t, s.ProfileCreated("Ada", false))
	})

	t.Run("activate twice", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SignedIn("ada@example.com"))
		require.NoError(t, s.ProfileLoaded("Ada", false))
		assert.Error(t, s.ProfileCreated("Ada", false))
	})

	t.Run("sign out while anonymous", func(t *testing.T) {
		s := New()
		assert.Error(t, s.SignedOut())
	})
}

func TestSession_SignOutFromNeedsProfile(t *testing.T) {
	s := New()
	require.NoError(t, s.SignedIn("ada@example.com"))
	require.NoError(t, s.SignedOut())
	assert.Equal(t, StateAnonymous, s.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "needs-profile", StateNeedsProfile.String())
	assert.Equal(t, "active", StateActive.String())
}
