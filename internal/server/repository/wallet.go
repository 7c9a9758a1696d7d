package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vornexz/pay/internal/server/models"
)

type Transactions interface {
	repository.Repository[*models.Transaction]

	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error)
	RecordTx(ctx context.Context, tx bun.IDB, record *models.Transaction) (*models.Transaction, error)
}

type transactions struct {
	repository.Repository[*models.Transaction]
	db *bun.DB
}

var _ Transactions = (*transactions)(nil)

func NewTransactionsRepository(db *bun.DB) Transactions {
	repo := repository.NewRepository[*models.Transaction](db, repository.ModelHandlers[*models.Transaction]{
		NewRecord: func() *models.Transaction { return &models.Transaction{} },
		GetID: func(t *models.Transaction) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *models.Transaction, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &transactions{Repository: repo, db: db}
}

func (r *transactions) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error) {
	var records []*models.Transaction
	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *transactions) RecordTx(ctx context.Context, tx bun.IDB, record *models.Transaction) (*models.Transaction, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, tx, record)
}

type Cards interface {
	repository.Repository[*models.Card]

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Card, error)
}

type cards struct {
	repository.Repository[*models.Card]
	db *bun.DB
}

var _ Cards = (*cards)(nil)

func NewCardsRepository(db *bun.DB) Cards {
	repo := repository.NewRepository[*models.Card](db, repository.ModelHandlers[*models.Card]{
		NewRecord: func() *models.Card { return &models.Card{} },
		GetID: func(c *models.Card) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *models.Card, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &cards{Repository: repo, db: db}
}

func (r *cards) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Card, error) {
	var records []*models.Card
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return records, nil
}
