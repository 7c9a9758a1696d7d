// Package session owns the client side authentication state machine.
// It composes the token store and the API client into a single source
// of truth the rest of the wallet consults before rendering anything.
package session

import (
	"context"
	"sync"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/client/api"
	"github.com/vornexz/pay/internal/client/store"
)

// State is the tagged session state. The tags make the impossible
// combinations of the usual loading/authenticated/user triple
// unrepresentable.
type State int

const (
	// Initializing means the startup verification round trip has not
	// resolved yet
	Initializing State = iota
	// Authenticated means a token was validated against the backend
	// during this session
	Authenticated
	// Unauthenticated means there is no valid session
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session handed to guards and
// views. User is nil unless State is Authenticated.
type Snapshot struct {
	State State
	User  *api.User
}

// Verifier is the slice of the API client the session needs
type Verifier interface {
	Verify(ctx context.Context, token string) (*api.User, error)
	Login(ctx context.Context, email, password string) (string, *api.User, error)
	Register(ctx context.Context, profile api.RegisterProfile) error
}

// Manager is the single session instance for a running client
type Manager struct {
	store  store.TokenStore
	api    Verifier
	logger auth.Logger

	mu       sync.Mutex
	started  bool
	inflight bool
	state    State
	user     *api.User
	token    string
}

func NewManager(tokens store.TokenStore, client Verifier) *Manager {
	return &Manager{
		store:  tokens,
		api:    client,
		logger: auth.DefaultLogger(),
		state:  Initializing,
	}
}

func (m *Manager) WithLogger(l auth.Logger) *Manager {
	if l != nil {
		m.logger = l
	}
	return m
}

// Start runs the one startup verification. With no persisted token it
// settles on Unauthenticated without a network call. With a token it
// verifies against the backend: success lands on Authenticated, any
// failure purges the token and lands on Unauthenticated. Subsequent
// calls are no-ops.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	token := m.store.Read()
	if token == "" {
		m.settle(Unauthenticated, nil, "")
		return
	}

	user, err := m.api.Verify(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			// cancelled before the backend answered, the token may
			// still be valid: stay Initializing and allow a retry
			m.logger.Debug("startup verification cancelled: %v", ctx.Err())
			m.mu.Lock()
			m.started = false
			m.mu.Unlock()
			return
		}

		// invalid or unverifiable token, auto heal to logged out
		m.logger.Debug("startup verification failed: %v", err)
		if err := m.store.Clear(); err != nil {
			m.logger.Error("failed to purge token: %v", err)
		}
		m.settle(Unauthenticated, nil, "")
		return
	}

	m.settle(Authenticated, user, token)
}

// Login exchanges credentials for a session. It reports success with a
// boolean so failures never escape to the view layer as errors.
// Concurrent submissions are rejected while one is in flight.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.mu.Lock()
	if m.inflight {
		m.mu.Unlock()
		return false
	}
	m.inflight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inflight = false
		m.mu.Unlock()
	}()

	token, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.logger.Debug("login rejected: %v", err)
		return false
	}

	if err := m.store.Write(token); err != nil {
		m.logger.Error("failed to persist token: %v", err)
		return false
	}

	m.settle(Authenticated, user, token)
	return true
}

// Register creates an account. It never changes the session state,
// whatever the outcome.
func (m *Manager) Register(ctx context.Context, profile api.RegisterProfile) error {
	return m.api.Register(ctx, profile)
}

// Logout purges the session. Synchronous, idempotent, never fails.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to clear token: %v", err)
	}
	m.settle(Unauthenticated, nil, "")
}

// Snapshot returns the current state for guards and views
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, User: m.user}
}

// Token returns the validated token for resource calls, empty when not
// authenticated
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) settle(state State, user *api.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
	m.token = token
}

type contextKey struct{}

// WithContext injects the session manager at the application root
func WithContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext retrieves the session manager
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(contextKey{}).(*Manager)
	return m, ok
}

// MustFromContext fails fast when used outside the injected tree
func MustFromContext(ctx context.Context) *Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic("session: manager not found in context, inject it with session.WithContext at the root")
	}
	return m
}
