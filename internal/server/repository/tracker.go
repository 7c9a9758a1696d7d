package repository

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/models"
)

// AccountTracker adapts the users repository to the identity layer
type AccountTracker struct {
	users Users
}

var _ auth.AccountTracker = (*AccountTracker)(nil)

func NewAccountTracker(users Users) *AccountTracker {
	return &AccountTracker{users: users}
}

func (t *AccountTracker) GetByIdentifier(ctx context.Context, identifier string) (auth.AccountRecord, error) {
	user, err := t.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, errors.Wrap(err, errors.CategoryNotFound, "account not found").
				WithTextCode("ACCOUNT_NOT_FOUND")
		}
		return nil, err
	}
	return user, nil
}

func (t *AccountTracker) TrackAttemptedLogin(ctx context.Context, record auth.AccountRecord) error {
	user, ok := record.(*models.User)
	if !ok {
		return errors.New("unexpected account record type", errors.CategoryInternal)
	}
	return t.users.TrackAttemptedLogin(ctx, user)
}

func (t *AccountTracker) TrackSuccessfulLogin(ctx context.Context, record auth.AccountRecord) error {
	user, ok := record.(*models.User)
	if !ok {
		return errors.New("unexpected account record type", errors.CategoryInternal)
	}
	return t.users.TrackSuccessfulLogin(ctx, user)
}
