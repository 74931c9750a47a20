package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/domains/user/usertest"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/pkg/jwt"
)

type memoryRevocations struct {
	mu      sync.Mutex
	records map[string]token.RevokedToken
	failGet error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{records: map[string]token.RevokedToken{}}
}

func (m *memoryRevocations) Revoke(_ context.Context, rt token.RevokedToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rt.JTI.String()] = rt
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return false, m.failGet
	}
	_, ok := m.records[jti]
	return ok, nil
}

func (m *memoryRevocations) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, rt := range m.records {
		if rt.ExpiresAt.Before(now) {
			delete(m.records, k)
			n++
		}
	}
	return n, nil
}

func newManager() *jwt.Manager {
	return jwt.NewManager(jwt.Config{
		Bearer:        jwt.Secrets{Access: "user-access", Refresh: "user-refresh"},
		System:        jwt.Secrets{Access: "system-access", Refresh: "system-refresh"},
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func newFixture(role user.Role) (*tokenService, *memoryRevocations, *usertest.Memory, *user.User) {
	u := &user.User{ID: uuid.New(), FirstName: "Sara", LastName: "Ali", Email: "sara@shop.test", Role: role}
	users := usertest.NewMemory(u)
	revocations := newMemoryRevocations()
	svc := NewTokenService(revocations, users, newManager(), nil).(*tokenService)
	return svc, revocations, users, u
}

func TestIssueAndDecode(t *testing.T) {
	svc, _, _, u := newFixture(user.RoleUser)

	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)
	assert.Equal(t, jwt.SchemeBearer, creds.Scheme)

	got, claims, err := svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, jwt.TokenAccess, claims.Type)

	_, refreshClaims, err := svc.Decode(context.Background(), "Bearer "+creds.RefreshToken, jwt.TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, refreshClaims.ID)
}

func TestIssue_AdminUsesSystemScheme(t *testing.T) {
	svc, _, _, u := newFixture(user.RoleAdmin)

	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)
	assert.Equal(t, jwt.SchemeSystem, creds.Scheme)

	// Sai tier → secret khác → reject
	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, _, err = svc.Decode(context.Background(), "System "+creds.AccessToken, jwt.TokenAccess)
	assert.NoError(t, err)
}

func TestDecode_WrongType(t *testing.T) {
	svc, _, _, u := newFixture(user.RoleUser)
	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)

	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenRefresh)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDecode_MissingHeader(t *testing.T) {
	svc, _, _, _ := newFixture(user.RoleUser)

	_, _, err := svc.Decode(context.Background(), "  ", jwt.TokenAccess)
	assert.ErrorIs(t, err, token.ErrMissingAuthorization)
	assert.Equal(t, 401, apperror.From(err).Status())
}

func TestDecode_RevokedJTI(t *testing.T) {
	svc, revocations, _, u := newFixture(user.RoleUser)
	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)

	_, claims, err := svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), claims))

	rt := revocations.records[claims.ID]
	assert.Equal(t, u.ID, rt.CreatedBy)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), rt.ExpiresAt, time.Second)

	// Cả access lẫn refresh cùng jti đều bị từ chối
	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	assert.ErrorIs(t, err, token.ErrRevokedToken)
	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.RefreshToken, jwt.TokenRefresh)
	assert.ErrorIs(t, err, token.ErrRevokedToken)
}

func TestDecode_IssuedBeforeCredentialChange(t *testing.T) {
	svc, _, users, u := newFixture(user.RoleUser)
	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)

	require.NoError(t, users.UpdatePassword(context.Background(), u.ID, "new-hash", time.Now().Add(time.Hour)))

	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	assert.ErrorIs(t, err, token.ErrRevokedToken)
}

func TestDecode_UnknownUser(t *testing.T) {
	svc, _, _, _ := newFixture(user.RoleUser)
	ghost := &user.User{ID: uuid.New(), Role: user.RoleUser}

	creds, err := svc.IssueLoginCredentials(ghost)
	require.NoError(t, err)

	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	assert.ErrorIs(t, err, token.ErrUnregisteredAccount)
}

func TestDecode_RevocationStoreFailureIsUnauthorized(t *testing.T) {
	svc, revocations, _, u := newFixture(user.RoleUser)
	creds, err := svc.IssueLoginCredentials(u)
	require.NoError(t, err)

	revocations.failGet = errors.New("connection refused")
	_, _, err = svc.Decode(context.Background(), "Bearer "+creds.AccessToken, jwt.TokenAccess)
	require.Error(t, err)
	assert.Equal(t, 401, apperror.From(err).Status())
}

func TestSweepExpired(t *testing.T) {
	svc, revocations, _, u := newFixture(user.RoleUser)
	now := time.Now()

	require.NoError(t, revocations.Revoke(context.Background(), token.RevokedToken{JTI: uuid.New(), ExpiresAt: now.Add(-time.Minute), CreatedBy: u.ID}))
	require.NoError(t, revocations.Revoke(context.Background(), token.RevokedToken{JTI: uuid.New(), ExpiresAt: now.Add(time.Hour), CreatedBy: u.ID}))

	deleted, err := svc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, revocations.records, 1)
}
