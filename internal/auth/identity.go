package auth

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
)

// fallbackHash is lazily derived once; it is what VerifyIdentity
// compares against when the identifier does not resolve to an account.
var fallbackHash = sync.OnceValue(RandomPasswordHash)

// Identity holds the attributes of an authenticated principal
type Identity interface {
	ID() string
	Email() string
	Role() string
	Premium() bool
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// AccountRecord is the subset of the persisted user the identity layer needs
type AccountRecord interface {
	AccountID() string
	AccountEmail() string
	AccountRole() UserRole
	AccountPremium() bool
	AccountPasswordHash() string
	AccountLoginAttempts() int
	AccountLoginAttemptAt() *time.Time
}

// AccountTracker is a store we can use to retrieve accounts and track
// login attempts against them
type AccountTracker interface {
	GetByIdentifier(ctx context.Context, identifier string) (AccountRecord, error)
	TrackAttemptedLogin(ctx context.Context, record AccountRecord) error
	TrackSuccessfulLogin(ctx context.Context, record AccountRecord) error
}

// MaxLoginAttempts is the maximum number of attempts a user gets
// in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = "24h"

// AccountIdentityProvider verifies credentials against an AccountTracker
type AccountIdentityProvider struct {
	store  AccountTracker
	logger Logger
}

// NewIdentityProvider will create a new AccountIdentityProvider
func NewIdentityProvider(store AccountTracker) *AccountIdentityProvider {
	return &AccountIdentityProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *AccountIdentityProvider) WithLogger(l Logger) *AccountIdentityProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the account, compare the password, and return
// the identity. Unknown identifiers and password mismatches return the
// same error so callers cannot probe for accounts.
func (u *AccountIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	record, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			// unknown identifiers still pay for a hash compare so
			// response timing does not reveal whether an account exists
			_ = ComparePasswordAndHash(password, fallbackHash())
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during verification")
	}

	attempts := record.AccountLoginAttempts()
	if at := record.AccountLoginAttemptAt(); at != nil {
		expired, err := CooldownExpired(*at, CoolDownPeriod)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to calculate login attempt cooldown")
		}
		if expired {
			attempts = 0
		}
	}

	// too many attempts in the window, cool off
	if attempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, record.AccountPasswordHash()); err != nil {
		if err2 := u.store.TrackAttemptedLogin(ctx, record); err2 != nil {
			return nil, errors.Wrap(err2, errors.CategoryInternal, "failed to track login attempt")
		}
		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.store.TrackSuccessfulLogin(ctx, record); err != nil {
		u.logger.Error("failed to track successful login: %v", err)
	}

	return identityFromRecord(record), nil
}

// FindIdentityByIdentifier resolves an identity without verifying credentials
func (u *AccountIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	record, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return identityFromRecord(record), nil
}

type authIdentity struct {
	id      string
	email   string
	role    string
	premium bool
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Role() string  { return a.role }
func (a authIdentity) Premium() bool { return a.premium }

var _ Identity = authIdentity{}

func identityFromRecord(record AccountRecord) Identity {
	return authIdentity{
		id:      record.AccountID(),
		email:   record.AccountEmail(),
		role:    string(record.AccountRole()),
		premium: record.AccountPremium(),
	}
}
