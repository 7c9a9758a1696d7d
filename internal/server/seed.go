package server

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/config"
	"github.com/vornexz/pay/internal/server/models"
	repo "github.com/vornexz/pay/internal/server/repository"
)

// Seed creates the baseline records the application expects: the admin
// account, the public content sections, the site configuration and,
// optionally, a demo wallet.
func Seed(ctx context.Context, manager repo.Manager, cfg *config.Config, logger auth.Logger) error {
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	if err := seedAdmin(ctx, manager, cfg); err != nil {
		return err
	}

	if err := seedContent(ctx, manager); err != nil {
		return err
	}

	if err := seedSiteConfig(ctx, manager); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		if err := seedDemoWallet(ctx, manager, logger); err != nil {
			return err
		}
	}

	return nil
}

func seedAdmin(ctx context.Context, manager repo.Manager, cfg *config.Config) error {
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.AdminEmail,
		FullName:     "VornexZ Admin",
		Role:         auth.RoleAdmin,
		PasswordHash: hash,
	}
	if id, err := hashid.NewUUID(cfg.AdminEmail); err == nil {
		admin.ID = id
	}

	_, err = manager.Users().GetOrCreate(ctx, admin)
	return err
}

var defaultSections = []*models.ContentSection{
	{
		Key:      models.SectionHero,
		Title:    "Your money, without borders",
		Subtitle: "A digital wallet for everyday payments",
		Body: map[string]any{
			"cta": "Open your account",
		},
	},
	{
		Key:   models.SectionAbout,
		Title: "About the group",
		Body: map[string]any{
			"text": "VornexZ is a holding of technology companies focused on financial services.",
		},
	},
	{
		Key:   models.SectionDifferentials,
		Title: "Why VornexZ",
		Body: map[string]any{
			"items": []string{"No hidden fees", "Instant transfers", "Premium cashback"},
		},
	},
	{
		Key: models.SectionFooter,
		Body: map[string]any{
			"copyright": "VornexZ Holding",
		},
	},
}

func seedContent(ctx context.Context, manager repo.Manager) error {
	for _, section := range defaultSections {
		_, err := manager.ContentSections().GetByKey(ctx, section.Key)
		if err == nil {
			continue
		}
		if !repository.IsRecordNotFound(err) {
			return err
		}

		record := *section
		if id, err := hashid.NewUUID("section:" + section.Key); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}

		if _, err := manager.ContentSections().Create(ctx, &record); err != nil {
			return err
		}
	}
	return nil
}

func seedSiteConfig(ctx context.Context, manager repo.Manager) error {
	if _, err := manager.SiteConfigs().Current(ctx); err == nil {
		return nil
	}

	record := &models.SiteConfig{
		SiteName:     "VornexZ",
		PrimaryColor: "#0B1F3A",
		ContactEmail: "contato@vornexz.com",
	}
	if id, err := hashid.NewUUID("site-config"); err == nil {
		record.ID = id
	} else {
		record.ID = uuid.New()
	}

	_, err := manager.SiteConfigs().Create(ctx, record)
	return err
}

func seedDemoWallet(ctx context.Context, manager repo.Manager, logger auth.Logger) error {
	hash, err := auth.HashPassword("demo123")
	if err != nil {
		return err
	}

	demo := &models.User{
		Email:        "demo@vornexz.com",
		FullName:     "Demo User",
		CPF:          "39053344705",
		Role:         auth.RoleMember,
		PasswordHash: hash,
		Balance:      125_000,
		Premium:      true,
	}
	if id, err := hashid.NewUUID(demo.Email); err == nil {
		demo.ID = id
	}

	user, err := manager.Users().GetOrCreate(ctx, demo)
	if err != nil {
		return err
	}

	existing, err := manager.Transactions().ListByUser(ctx, user.ID, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seedTxns := []*models.Transaction{
		{UserID: user.ID, Type: models.TransactionCredit, Description: "Salary", Category: "income", AmountCents: 350_000},
		{UserID: user.ID, Type: models.TransactionDebit, Description: "Groceries", Category: "food", AmountCents: 42_050},
		{UserID: user.ID, Type: models.TransactionDebit, Description: "Streaming subscription", Category: "entertainment", AmountCents: 3_990},
	}
	for _, txn := range seedTxns {
		txn.ID = uuid.New()
		if _, err := manager.Transactions().Create(ctx, txn); err != nil {
			return err
		}
	}

	card := &models.Card{
		ID:         uuid.New(),
		UserID:     user.ID,
		Brand:      "Visa",
		LastFour:   "4821",
		Holder:     demo.FullName,
		Expiry:     "12/29",
		LimitCents: 500_000,
		Status:     models.CardActive,
	}
	if _, err := manager.Cards().Create(ctx, card); err != nil {
		return err
	}

	logger.Info("seeded demo wallet for %s", demo.Email)
	return nil
}
