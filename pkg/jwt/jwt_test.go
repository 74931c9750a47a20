package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(Config{
		Bearer:        Secrets{Access: "user-access", Refresh: "user-refresh"},
		System:        Secrets{Access: "system-access", Refresh: "system-refresh"},
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGeneratePair_SchemeByRole(t *testing.T) {
	m := newTestManager()

	userPair, err := m.GeneratePair("u1", "user")
	require.NoError(t, err)
	assert.Equal(t, SchemeBearer, userPair.Scheme)

	adminPair, err := m.GeneratePair("a1", "admin")
	require.NoError(t, err)
	assert.Equal(t, SchemeSystem, adminPair.Scheme)
}

func TestVerify_SharedJTI(t *testing.T) {
	m := newTestManager()
	pair, err := m.GeneratePair("u1", "user")
	require.NoError(t, err)

	access, err := m.VerifyHeader("Bearer "+pair.AccessToken, TokenAccess)
	require.NoError(t, err)
	refresh, err := m.VerifyHeader("Bearer "+pair.RefreshToken, TokenRefresh)
	require.NoError(t, err)

	assert.Equal(t, pair.JTI, access.ID)
	assert.Equal(t, access.ID, refresh.ID)
	assert.Equal(t, "u1", access.UserID)
	assert.Equal(t, TokenAccess, access.Type)
}

func TestVerify_Rejections(t *testing.T) {
	m := newTestManager()
	userPair, _ := m.GeneratePair("u1", "user")
	adminPair, _ := m.GeneratePair("a1", "admin")

	t.Run("wrong type", func(t *testing.T) {
		_, err := m.VerifyHeader("Bearer "+userPair.AccessToken, TokenRefresh)
		assert.Error(t, err)
	})

	t.Run("wrong tier", func(t *testing.T) {
		_, err := m.VerifyHeader("System "+userPair.AccessToken, TokenAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = m.VerifyHeader("Bearer "+adminPair.AccessToken, TokenAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed header", func(t *testing.T) {
		_, err := m.VerifyHeader(userPair.AccessToken, TokenAccess)
		assert.ErrorIs(t, err, ErrMalformedHeader)

		_, err = m.VerifyHeader("Basic abc", TokenAccess)
		assert.ErrorIs(t, err, ErrUnknownScheme)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()

		_, err := m.VerifyHeader("Bearer "+userPair.AccessToken, TokenAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSchemeForRole(t *testing.T) {
	assert.Equal(t, SchemeSystem, SchemeForRole("admin"))
	assert.Equal(t, SchemeBearer, SchemeForRole("user"))
	assert.Equal(t, SchemeBearer, SchemeForRole(""))
}
