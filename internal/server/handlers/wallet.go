package handlers

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/models"
	"github.com/vornexz/pay/internal/server/repository"
)

// WalletHandler serves balances, statements and cards
type WalletHandler struct {
	Logger auth.Logger
	Repo   repository.Manager
}

func NewWalletHandler(repo repository.Manager, logger auth.Logger) *WalletHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &WalletHandler{Repo: repo, Logger: logger}
}

func (h *WalletHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	claims, ok := auth.GetClaims(c.UserContext())
	if !ok {
		return nil, goerrors.New("missing session claims", goerrors.CategoryAuth).
			WithTextCode("UNAUTHORIZED")
	}
	return h.Repo.Users().GetByIdentifier(c.UserContext(), claims.UserID())
}

func (h *WalletHandler) Balance(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"balance_cents": user.Balance,
		"is_premium":    user.Premium,
	})
}

func (h *WalletHandler) Transactions(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	limit := c.QueryInt("limit", 50)
	records, err := h.Repo.Transactions().ListByUser(c.UserContext(), user.ID, limit)
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(records)
}

// CreateTransactionRequest payload
type CreateTransactionRequest struct {
	Type        string `json:"tx_type" form:"tx_type"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	AmountCents int64  `json:"amount_cents" form:"amount_cents"`
}

func (r CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required,
			validation.In(models.TransactionCredit, models.TransactionDebit)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.AmountCents, validation.Required, validation.Min(int64(1))),
	)
}

// CreateTransaction records a statement entry and adjusts the balance
// in the same transaction
func (h *WalletHandler) CreateTransaction(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	payload := new(CreateTransactionRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse transaction payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	delta := payload.AmountCents
	if payload.Type == models.TransactionDebit {
		delta = -delta
		if user.Balance+delta < 0 {
			return RenderError(c, goerrors.New("insufficient funds", goerrors.CategoryConflict).
				WithTextCode("INSUFFICIENT_FUNDS"))
		}
	}

	record := &models.Transaction{
		ID:          uuid.New(),
		UserID:      user.ID,
		Type:        payload.Type,
		Description: payload.Description,
		Category:    payload.Category,
		AmountCents: payload.AmountCents,
	}

	err = h.Repo.RunInTx(c.UserContext(), nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.Repo.Transactions().RecordTx(ctx, tx, record); err != nil {
			return err
		}

		_, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("balance_cents = balance_cents + ?", delta).
			Where("id = ?", user.ID).
			Exec(ctx)
		return err
	})
	if err != nil {
		h.Logger.Error("record transaction: %v", err)
		return RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *WalletHandler) Cards(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	records, err := h.Repo.Cards().ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(records)
}
