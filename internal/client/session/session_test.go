package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/client/api"
	"github.com/vornexz/pay/internal/client/session"
	"github.com/vornexz/pay/internal/client/store"
)

type stubAPI struct {
	verifyCalls int
	verifyUser  *api.User
	verifyErr   error

	loginCalls int
	loginToken string
	loginUser  *api.User
	loginErr   error

	registerErr error
}

func (s *stubAPI) Verify(ctx context.Context, token string) (*api.User, error) {
	s.verifyCalls++
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyUser, nil
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (string, *api.User, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAPI) Register(ctx context.Context, profile api.RegisterProfile) error {
	return s.registerErr
}

func newStore(t *testing.T) store.TokenStore {
	t.Helper()
	return store.NewFileStoreAt(filepath.Join(t.TempDir(), "token"))
}

func TestStartWithoutTokenSkipsVerification(t *testing.T) {
	backend := &stubAPI{}
	mgr := session.NewManager(newStore(t), backend)

	mgr.Start(context.Background())

	snap := mgr.Snapshot()
	assert.Equal(t, session.Unauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Equal(t, 0, backend.verifyCalls)
}

func TestStartWithValidToken(t *testing.T) {
	tokens := newStore(t)
	require.NoError(t, tokens.Write("tok-valid"))

	backend := &stubAPI{verifyUser: &api.User{Email: "demo@vornexz.com"}}
	mgr := session.NewManager(tokens, backend)

	mgr.Start(context.Background())

	snap := mgr.Snapshot()
	assert.Equal(t, session.Authenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "demo@vornexz.com", snap.User.Email)
	assert.Equal(t, "tok-valid", mgr.Token())
	assert.Equal(t, 1, backend.verifyCalls)
}

func TestStartWithInvalidTokenPurges(t *testing.T) {
	tokens := newStore(t)
	require.NoError(t, tokens.Write("tok-stale"))

	backend := &stubAPI{verifyErr: api.ErrUnauthorized}
	mgr := session.NewManager(tokens, backend)

	mgr.Start(context.Background())

	snap := mgr.Snapshot()
	assert.Equal(t, session.Unauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, tokens.Read())
	assert.Empty(t, mgr.Token())
}

type ctxAwareAPI struct {
	stubAPI
}

func (c *ctxAwareAPI) Verify(ctx context.Context, token string) (*api.User, error) {
	c.verifyCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.verifyUser, nil
}

func TestStartCancellationKeepsToken(t *testing.T) {
	tokens := newStore(t)
	require.NoError(t, tokens.Write("tok-still-valid"))

	backend := &ctxAwareAPI{stubAPI{verifyUser: &api.User{Email: "demo@vornexz.com"}}}
	mgr := session.NewManager(tokens, backend)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	mgr.Start(cancelled)

	assert.Equal(t, session.Initializing, mgr.Snapshot().State)
	assert.Equal(t, "tok-still-valid", tokens.Read())

	// a later start with a live context completes the verification
	mgr.Start(context.Background())
	snap := mgr.Snapshot()
	assert.Equal(t, session.Authenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "demo@vornexz.com", snap.User.Email)
}

func TestStartRunsOnce(t *testing.T) {
	tokens := newStore(t)
	require.NoError(t, tokens.Write("tok-valid"))

	backend := &stubAPI{verifyUser: &api.User{}}
	mgr := session.NewManager(tokens, backend)

	mgr.Start(context.Background())
	mgr.Start(context.Background())
	mgr.Start(context.Background())

	assert.Equal(t, 1, backend.verifyCalls)
}

func TestLoginSuccess(t *testing.T) {
	tokens := newStore(t)
	backend := &stubAPI{
		loginToken: "tok-fresh",
		loginUser:  &api.User{Email: "ana@vornexz.com"},
	}
	mgr := session.NewManager(tokens, backend)
	mgr.Start(context.Background())

	ok := mgr.Login(context.Background(), "ana@vornexz.com", "secret")

	require.True(t, ok)
	snap := mgr.Snapshot()
	assert.Equal(t, session.Authenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "ana@vornexz.com", snap.User.Email)
	assert.Equal(t, "tok-fresh", tokens.Read())
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	tokens := newStore(t)
	backend := &stubAPI{loginErr: api.ErrInvalidCredentials}
	mgr := session.NewManager(tokens, backend)
	mgr.Start(context.Background())

	ok := mgr.Login(context.Background(), "ana@vornexz.com", "wrong")

	assert.False(t, ok)
	snap := mgr.Snapshot()
	assert.Equal(t, session.Unauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, tokens.Read())
}

type blockingAPI struct {
	stubAPI
	blockedLogins atomic.Int32
	release       chan struct{}
}

func (b *blockingAPI) Login(ctx context.Context, email, password string) (string, *api.User, error) {
	b.blockedLogins.Add(1)
	<-b.release
	return "tok-fresh", &api.User{}, nil
}

func TestLoginRejectsConcurrentAttempts(t *testing.T) {
	backend := &blockingAPI{release: make(chan struct{})}
	mgr := session.NewManager(newStore(t), backend)
	mgr.Start(context.Background())

	first := make(chan bool)
	go func() {
		first <- mgr.Login(context.Background(), "ana@vornexz.com", "secret")
	}()

	// wait for the first attempt to reach the backend
	require.Eventually(t, func() bool {
		return backend.blockedLogins.Load() == 1
	}, time.Second, time.Millisecond)

	assert.False(t, mgr.Login(context.Background(), "ana@vornexz.com", "secret"))

	close(backend.release)
	assert.True(t, <-first)
	assert.Equal(t, int32(1), backend.blockedLogins.Load())
}

func TestRegisterDoesNotChangeState(t *testing.T) {
	backend := &stubAPI{}
	mgr := session.NewManager(newStore(t), backend)
	mgr.Start(context.Background())

	require.NoError(t, mgr.Register(context.Background(), api.RegisterProfile{Email: "new@vornexz.com"}))
	assert.Equal(t, session.Unauthenticated, mgr.Snapshot().State)

	backend.registerErr = errors.New("email taken")
	assert.Error(t, mgr.Register(context.Background(), api.RegisterProfile{Email: "new@vornexz.com"}))
	assert.Equal(t, session.Unauthenticated, mgr.Snapshot().State)
}

func TestLogoutIsIdempotent(t *testing.T) {
	tokens := newStore(t)
	require.NoError(t, tokens.Write("tok-valid"))

	backend := &stubAPI{verifyUser: &api.User{Email: "demo@vornexz.com"}}
	mgr := session.NewManager(tokens, backend)
	mgr.Start(context.Background())
	require.Equal(t, session.Authenticated, mgr.Snapshot().State)

	mgr.Logout()
	mgr.Logout()

	snap := mgr.Snapshot()
	assert.Equal(t, session.Unauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, tokens.Read())
}

func TestContextInjection(t *testing.T) {
	mgr := session.NewManager(newStore(t), &stubAPI{})

	ctx := session.WithContext(context.Background(), mgr)
	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, mgr, got)
	assert.Same(t, mgr, session.MustFromContext(ctx))

	_, ok = session.FromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { session.MustFromContext(context.Background()) })
}
