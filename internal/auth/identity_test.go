package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/auth"
)

type mockAccount struct {
	id           string
	email        string
	role         auth.UserRole
	premium      bool
	passwordHash string
	attempts     int
	attemptAt    *time.Time
}

func (m *mockAccount) AccountID() string                  { return m.id }
func (m *mockAccount) AccountEmail() string               { return m.email }
func (m *mockAccount) AccountRole() auth.UserRole         { return m.role }
func (m *mockAccount) AccountPremium() bool               { return m.premium }
func (m *mockAccount) AccountPasswordHash() string        { return m.passwordHash }
func (m *mockAccount) AccountLoginAttempts() int          { return m.attempts }
func (m *mockAccount) AccountLoginAttemptAt() *time.Time  { return m.attemptAt }

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) GetByIdentifier(ctx context.Context, identifier string) (auth.AccountRecord, error) {
	args := m.Called(ctx, identifier)
	if rec := args.Get(0); rec != nil {
		return rec.(auth.AccountRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTracker) TrackAttemptedLogin(ctx context.Context, record auth.AccountRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockTracker) TrackSuccessfulLogin(ctx context.Context, record auth.AccountRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func testAccount(t *testing.T, password string) *mockAccount {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &mockAccount{
		id:           "user-1",
		email:        "ana@example.com",
		role:         auth.RoleMember,
		passwordHash: hash,
	}
}

func TestVerifyIdentitySuccess(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "secret123")

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "ana@example.com").Return(account, nil)
	tracker.On("TrackSuccessfulLogin", ctx, account).Return(nil)

	provider := auth.NewIdentityProvider(tracker)

	identity, err := provider.VerifyIdentity(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "user-1", identity.ID())
	assert.Equal(t, "ana@example.com", identity.Email())
	assert.Equal(t, auth.RoleMember, identity.Role())
	tracker.AssertExpectations(t)
}

func TestVerifyIdentityWrongPassword(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "secret123")

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "ana@example.com").Return(account, nil)
	tracker.On("TrackAttemptedLogin", ctx, account).Return(nil)

	provider := auth.NewIdentityProvider(tracker)

	_, err := provider.VerifyIdentity(ctx, "ana@example.com", "not-it")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	tracker.AssertExpectations(t)
}

func TestVerifyIdentityUnknownAccountLooksLikeBadPassword(t *testing.T) {
	ctx := context.Background()

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "nobody@example.com").
		Return(nil, errors.New("record not found", errors.CategoryNotFound))

	provider := auth.NewIdentityProvider(tracker)

	_, err := provider.VerifyIdentity(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
}

func TestVerifyIdentityTooManyAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	account := testAccount(t, "secret123")
	account.attempts = auth.MaxLoginAttempts + 1
	account.attemptAt = &now

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "ana@example.com").Return(account, nil)

	provider := auth.NewIdentityProvider(tracker)

	_, err := provider.VerifyIdentity(ctx, "ana@example.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrTooManyLoginAttempts)
}

func TestVerifyIdentityAttemptsResetAfterCoolDown(t *testing.T) {
	ctx := context.Background()
	past := time.Now().Add(-48 * time.Hour)

	account := testAccount(t, "secret123")
	account.attempts = auth.MaxLoginAttempts + 3
	account.attemptAt = &past

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "ana@example.com").Return(account, nil)
	tracker.On("TrackSuccessfulLogin", ctx, account).Return(nil)

	provider := auth.NewIdentityProvider(tracker)

	identity, err := provider.VerifyIdentity(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID())
}

func TestFindIdentityByIdentifierNotFound(t *testing.T) {
	ctx := context.Background()

	tracker := &mockTracker{}
	tracker.On("GetByIdentifier", ctx, "nobody@example.com").
		Return(nil, errors.New("record not found", errors.CategoryNotFound))

	provider := auth.NewIdentityProvider(tracker)

	_, err := provider.FindIdentityByIdentifier(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
}
