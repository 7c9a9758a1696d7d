package handlers

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/models"
	repo "github.com/vornexz/pay/internal/server/repository"
	"github.com/vornexz/pay/internal/server/twofactor"
)

// SecurityHandler serves account security settings and second factor flows
type SecurityHandler struct {
	Logger auth.Logger
	Repo   repo.Manager
}

func NewSecurityHandler(manager repo.Manager, logger auth.Logger) *SecurityHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &SecurityHandler{Repo: manager, Logger: logger}
}

func (h *SecurityHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	claims, ok := auth.GetClaims(c.UserContext())
	if !ok {
		return nil, goerrors.New("missing session claims", goerrors.CategoryAuth).
			WithTextCode("UNAUTHORIZED")
	}
	return h.Repo.Users().GetByIdentifier(c.UserContext(), claims.UserID())
}

func (h *SecurityHandler) Settings(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"two_factor_enabled": user.TwoFactorEnabled,
		"two_factor_method":  user.TwoFactorMethod,
		"biometric_enabled":  user.BiometricEnabled,
	})
}

// UpdateDataRequest payload, profile fields optional. The current
// password confirms the change.
type UpdateDataRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	FullName        string `json:"full_name" form:"full_name"`
	Phone           string `json:"phone_number" form:"phone_number"`
	Address         string `json:"address" form:"address"`
	City            string `json:"city" form:"city"`
	State           string `json:"state" form:"state"`
	ZipCode         string `json:"zip_code" form:"zip_code"`
}

func (r UpdateDataRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.FullName, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.By(optional(validateBRPhone))),
		validation.Field(&r.ZipCode, validation.Length(8, 9)),
	)
}

func optional(rule validation.RuleFunc) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		return rule(value)
	}
}

func (h *SecurityHandler) UpdateData(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	payload := new(UpdateDataRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse profile payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	if err := auth.ComparePasswordAndHash(payload.CurrentPassword, user.PasswordHash); err != nil {
		return RenderError(c, goerrors.New("invalid password confirmation", goerrors.CategoryAuth).
			WithTextCode("INVALID_CREDENTIALS"))
	}

	if payload.FullName != "" {
		user.FullName = payload.FullName
	}
	if payload.Phone != "" {
		user.Phone = onlyDigits(payload.Phone)
	}
	if payload.Address != "" {
		user.Address = payload.Address
	}
	if payload.City != "" {
		user.City = payload.City
	}
	if payload.State != "" {
		user.State = payload.State
	}
	if payload.ZipCode != "" {
		user.ZipCode = onlyDigits(payload.ZipCode)
	}

	updated, err := h.Repo.Users().Update(c.UserContext(), user,
		repository.UpdateByID(user.ID.String()))
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(updated)
}

// EnableTwoFactorRequest payload
type EnableTwoFactorRequest struct {
	Method string `json:"method" form:"method"`
}

func (r EnableTwoFactorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method, validation.Required,
			validation.In(models.TwoFactorTOTP, models.TwoFactorEmail)),
	)
}

// EnableTwoFactor stages a second factor. The factor only becomes active
// once a code is confirmed through VerifyTwoFactor.
func (h *SecurityHandler) EnableTwoFactor(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	payload := new(EnableTwoFactorRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse 2fa payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	user.TwoFactorMethod = payload.Method
	user.TwoFactorEnabled = false

	response := fiber.Map{"method": payload.Method}

	if payload.Method == models.TwoFactorTOTP {
		secret, err := twofactor.GenerateSecretKey(user.Email)
		if err != nil {
			return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate totp secret"))
		}
		user.TOTPSecret = secret

		uri := twofactor.GetTOTPURI(secret, user.Email)
		response["otpauth_uri"] = uri
	}

	if _, err := h.Repo.Users().Update(c.UserContext(), user,
		repository.UpdateByID(user.ID.String())); err != nil {
		return RenderError(c, err)
	}

	return c.JSON(response)
}

// TwoFactorQR renders the provisioning QR for the staged TOTP secret
func (h *SecurityHandler) TwoFactorQR(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	if user.TOTPSecret == "" {
		return RenderError(c, goerrors.New("no totp secret staged", goerrors.CategoryValidation).
			WithTextCode("NO_TOTP_SECRET"))
	}

	uri := twofactor.GetTOTPURI(user.TOTPSecret, user.Email)

	if c.Query("format") == "png" {
		png, err := twofactor.QRCodePNG(uri, c.QueryInt("size", 256))
		if err != nil {
			return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to render qr code"))
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	}

	dataURI, err := twofactor.QRCodeBase64(uri, c.QueryInt("size", 256))
	if err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to render qr code"))
	}

	return c.JSON(fiber.Map{"qr_code": dataURI})
}

// SendEmailCode issues a short lived code for email based 2FA. Delivery
// is out of scope, the code is written to the server log.
func (h *SecurityHandler) SendEmailCode(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	code, err := twofactor.GenerateEmailCode()
	if err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate email code"))
	}

	record := &models.EmailCode{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(twofactor.EmailCodeTTL),
	}

	if _, err := h.Repo.EmailCodes().Create(c.UserContext(), record); err != nil {
		return RenderError(c, err)
	}

	h.Logger.Info("email 2fa code for %s: %s", user.Email, code)

	return c.JSON(fiber.Map{
		"sent":       true,
		"expires_at": record.ExpiresAt,
	})
}

// VerifyTwoFactorRequest payload
type VerifyTwoFactorRequest struct {
	Code string `json:"code" form:"code"`
}

func (r VerifyTwoFactorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6)),
	)
}

// VerifyTwoFactor confirms the staged factor and turns it on
func (h *SecurityHandler) VerifyTwoFactor(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	payload := new(VerifyTwoFactorRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse verification payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	switch user.TwoFactorMethod {
	case models.TwoFactorTOTP:
		if !twofactor.ValidateTOTP(user.TOTPSecret, payload.Code) {
			return RenderError(c, goerrors.New("invalid verification code", goerrors.CategoryAuth).
				WithTextCode("INVALID_2FA_CODE"))
		}
	case models.TwoFactorEmail:
		if err := h.consumeEmailCode(c, user, payload.Code); err != nil {
			return RenderError(c, err)
		}
	default:
		return RenderError(c, goerrors.New("no second factor staged", goerrors.CategoryValidation).
			WithTextCode("NO_2FA_STAGED"))
	}

	user.TwoFactorEnabled = true
	if _, err := h.Repo.Users().Update(c.UserContext(), user,
		repository.UpdateByID(user.ID.String())); err != nil {
		return RenderError(c, err)
	}

	return c.JSON(fiber.Map{
		"two_factor_enabled": true,
		"two_factor_method":  user.TwoFactorMethod,
	})
}

func (h *SecurityHandler) consumeEmailCode(c *fiber.Ctx, user *models.User, code string) error {
	record := &models.EmailCode{}
	err := h.Repo.DB().NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", user.ID).
		Where("?TableAlias.code = ?", code).
		Where("?TableAlias.used_at IS NULL").
		Where("?TableAlias.expires_at > ?", time.Now()).
		Order("created_at DESC").
		Limit(1).
		Scan(c.UserContext())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return goerrors.New("invalid verification code", goerrors.CategoryAuth).
				WithTextCode("INVALID_2FA_CODE")
		}
		return err
	}

	now := time.Now()
	record.UsedAt = &now
	_, err = h.Repo.EmailCodes().Update(c.UserContext(), record,
		repository.UpdateByID(record.ID.String()))
	return err
}

// BiometricRequest payload
type BiometricRequest struct {
	Enabled bool `json:"enabled" form:"enabled"`
}

func (h *SecurityHandler) Biometric(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return RenderError(c, err)
	}

	payload := new(BiometricRequest)
	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse biometric payload"))
	}

	user.BiometricEnabled = payload.Enabled
	if _, err := h.Repo.Users().Update(c.UserContext(), user,
		repository.UpdateByID(user.ID.String())); err != nil {
		return RenderError(c, err)
	}

	return c.JSON(fiber.Map{"biometric_enabled": user.BiometricEnabled})
}
