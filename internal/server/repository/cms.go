package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vornexz/pay/internal/server/models"
)

type Companies interface {
	repository.Repository[*models.Company]

	ListActive(ctx context.Context) ([]*models.Company, error)
	ListAll(ctx context.Context) ([]*models.Company, error)
}

type companies struct {
	repository.Repository[*models.Company]
	db *bun.DB
}

var _ Companies = (*companies)(nil)

func NewCompaniesRepository(db *bun.DB) Companies {
	repo := repository.NewRepository[*models.Company](db, repository.ModelHandlers[*models.Company]{
		NewRecord: func() *models.Company { return &models.Company{} },
		GetID: func(c *models.Company) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *models.Company, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &companies{Repository: repo, db: db}
}

func (r *companies) ListActive(ctx context.Context) ([]*models.Company, error) {
	var records []*models.Company
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.is_active = ?", true).
		Order("sort_order ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *companies) ListAll(ctx context.Context) ([]*models.Company, error) {
	var records []*models.Company
	err := r.db.NewSelect().
		Model(&records).
		Order("sort_order ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return records, nil
}

type ContentSections interface {
	repository.Repository[*models.ContentSection]

	GetByKey(ctx context.Context, key string) (*models.ContentSection, error)
	ListAll(ctx context.Context) ([]*models.ContentSection, error)
}

type sections struct {
	repository.Repository[*models.ContentSection]
	db *bun.DB
}

var _ ContentSections = (*sections)(nil)

func NewContentSectionsRepository(db *bun.DB) ContentSections {
	handlers := repository.ModelHandlers[*models.ContentSection]{
		NewRecord: func() *models.ContentSection { return &models.ContentSection{} },
		GetID: func(s *models.ContentSection) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *models.ContentSection, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "section_key"
		},
	}

	return &sections{
		Repository: repository.NewRepository(db, handlers),
		db:         db,
	}
}

func (r *sections) GetByKey(ctx context.Context, key string) (*models.ContentSection, error) {
	record := &models.ContentSection{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.section_key = ?", key).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"section_key": key,
				})
		}
		return nil, err
	}
	return record, nil
}

func (r *sections) ListAll(ctx context.Context) ([]*models.ContentSection, error) {
	var records []*models.ContentSection
	if err := r.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

type SiteConfigs interface {
	repository.Repository[*models.SiteConfig]

	Current(ctx context.Context) (*models.SiteConfig, error)
}

type siteConfigs struct {
	repository.Repository[*models.SiteConfig]
	db *bun.DB
}

var _ SiteConfigs = (*siteConfigs)(nil)

func NewSiteConfigsRepository(db *bun.DB) SiteConfigs {
	repo := repository.NewRepository[*models.SiteConfig](db, repository.ModelHandlers[*models.SiteConfig]{
		NewRecord: func() *models.SiteConfig { return &models.SiteConfig{} },
		GetID: func(c *models.SiteConfig) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *models.SiteConfig, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
	})

	return &siteConfigs{Repository: repo, db: db}
}

// Current returns the singleton row
func (r *siteConfigs) Current(ctx context.Context) (*models.SiteConfig, error) {
	record := &models.SiteConfig{}
	err := r.db.NewSelect().
		Model(record).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, err
	}
	return record, nil
}
