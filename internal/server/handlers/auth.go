package handlers

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/nyaruka/phonenumbers"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/repository"
)

// AuthHandler serves login, registration and the identity endpoint
type AuthHandler struct {
	Debug  bool
	Logger auth.Logger
	Auther auth.Authenticator
	Repo   repository.Manager
}

func NewAuthHandler(auther auth.Authenticator, repo repository.Manager, logger auth.Logger) *AuthHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &AuthHandler{
		Auther: auther,
		Repo:   repo,
		Logger: logger,
	}
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse login payload"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(c, err)
	}

	if h.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, err := h.Auther.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		h.Logger.Error("login failed for %s: %v", payload.Identifier, err)
		if errors.Is(err, auth.ErrTooManyLoginAttempts) {
			return RenderError(c, goerrors.Wrap(err, goerrors.CategoryRateLimit, "too many login attempts").
				WithTextCode("TOO_MANY_ATTEMPTS"))
		}
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid credentials").
			WithTextCode("INVALID_CREDENTIALS"))
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// RegisterRequest payload
type RegisterRequest struct {
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	CPF             string `json:"cpf" form:"cpf"`
	RG              string `json:"rg" form:"rg"`
	Phone           string `json:"phone_number" form:"phone_number"`
	BirthDate       string `json:"birth_date" form:"birth_date"`
	Address         string `json:"address" form:"address"`
	City            string `json:"city" form:"city"`
	State           string `json:"state" form:"state"`
	ZipCode         string `json:"zip_code" form:"zip_code"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.CPF, validation.Required, validation.By(validateCPF)),
		validation.Field(&r.Phone, validation.Required, validation.By(validateBRPhone)),
		validation.Field(&r.ZipCode, validation.Length(8, 9)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		h.Logger.Error("register user parse payload: %v", err)
		return RenderError(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse registration payload"))
	}

	if err := payload.Validate(); err != nil {
		h.Logger.Error("register user validate payload: %v", err)
		return RenderError(c, err)
	}

	req := RegisterUserMessage{
		FullName:  payload.FullName,
		Email:     payload.Email,
		CPF:       payload.CPF,
		RG:        payload.RG,
		Phone:     payload.Phone,
		BirthDate: payload.BirthDate,
		Address:   payload.Address,
		City:      payload.City,
		State:     payload.State,
		ZipCode:   payload.ZipCode,
		Password:  payload.Password,
	}

	registerUser := RegisterUserHandler{repo: h.Repo}
	user, err := registerUser.Execute(c.UserContext(), req)
	if err != nil {
		h.Logger.Error("register user: %v", err)
		return RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.GetClaims(c.UserContext())
	if !ok {
		return RenderError(c, goerrors.New("missing session claims", goerrors.CategoryAuth).
			WithTextCode("UNAUTHORIZED"))
	}

	user, err := h.Repo.Users().GetByIdentifier(c.UserContext(), claims.UserID())
	if err != nil {
		return RenderError(c, err)
	}

	return c.JSON(user)
}

// ValidateStringEquals checks two strings match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return fmt.Errorf("values must match")
		}
		return nil
	}
}

func validateCPF(value any) error {
	s, _ := value.(string)
	digits := onlyDigits(s)
	if len(digits) != 11 {
		return fmt.Errorf("must be a valid CPF")
	}
	return nil
}

func validateBRPhone(value any) error {
	s, _ := value.(string)
	num, err := phonenumbers.Parse(s, "BR")
	if err != nil {
		return fmt.Errorf("must be a valid phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("must be a valid phone number")
	}
	return nil
}
