package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vornexz/pay/internal/server/models"
)

// Manager exposes all repositories
type Manager interface {
	repository.Validator
	repository.TransactionManager
	DB() *bun.DB
	Users() Users
	Transactions() Transactions
	Cards() Cards
	Companies() Companies
	ContentSections() ContentSections
	SiteConfigs() SiteConfigs
	EmailCodes() repository.Repository[*models.EmailCode]
}

func NewEmailCodesRepository(db *bun.DB) repository.Repository[*models.EmailCode] {
	handlers := repository.ModelHandlers[*models.EmailCode]{
		NewRecord: func() *models.EmailCode {
			return &models.EmailCode{}
		},
		GetID: func(record *models.EmailCode) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *models.EmailCode, id uuid.UUID) {
			record.ID = id
		},
	}
	return repository.NewRepository(db, handlers)
}

type mngr struct {
	db           *bun.DB
	users        Users
	transactions Transactions
	cards        Cards
	companies    Companies
	sections     ContentSections
	siteConfigs  SiteConfigs
	emailCodes   repository.Repository[*models.EmailCode]
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:           db,
		users:        NewUsersRepository(db),
		transactions: NewTransactionsRepository(db),
		cards:        NewCardsRepository(db),
		companies:    NewCompaniesRepository(db),
		sections:     NewContentSectionsRepository(db),
		siteConfigs:  NewSiteConfigsRepository(db),
		emailCodes:   NewEmailCodesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.transactions == nil {
		return errors.New("repository transactions should be initialized")
	}

	if m.cards == nil {
		return errors.New("repository cards should be initialized")
	}

	if m.companies == nil {
		return errors.New("repository companies should be initialized")
	}

	if m.sections == nil {
		return errors.New("repository sections should be initialized")
	}

	if m.siteConfigs == nil {
		return errors.New("repository siteConfigs should be initialized")
	}

	if m.emailCodes == nil {
		return errors.New("repository emailCodes should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) DB() *bun.DB                      { return m.db }
func (m mngr) Users() Users                     { return m.users }
func (m mngr) Transactions() Transactions       { return m.transactions }
func (m mngr) Cards() Cards                     { return m.cards }
func (m mngr) Companies() Companies             { return m.companies }
func (m mngr) ContentSections() ContentSections { return m.sections }
func (m mngr) SiteConfigs() SiteConfigs         { return m.siteConfigs }

func (m mngr) EmailCodes() repository.Repository[*models.EmailCode] {
	return m.emailCodes
}
