// Package api is the HTTP client for the wallet backend. It translates
// auth and resource intents into REST calls and maps every failure into
// a small error taxonomy the session layer can act on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

var (
	// ErrUnauthorized covers a missing, expired or rejected token during
	// verification. Transport failures are folded in as well: the caller
	// treats every verification failure the same way and purges the
	// session.
	ErrUnauthorized = errors.New("session rejected", errors.CategoryAuth).
			WithTextCode("UNAUTHORIZED")

	// ErrInvalidCredentials is a rejected login
	ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS")

	// ErrValidation is a rejected registration or profile update
	ErrValidation = errors.New("request rejected", errors.CategoryValidation).
			WithTextCode("VALIDATION_ERROR")
)

// User is the profile shape the wallet consumes
type User struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	CPF              string `json:"cpf"`
	Phone            string `json:"phone_number"`
	City             string `json:"city"`
	State            string `json:"state"`
	Role             string `json:"user_role"`
	Premium          bool   `json:"is_premium"`
	Balance          int64  `json:"balance_cents"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	TwoFactorMethod  string `json:"two_factor_method"`
	BiometricEnabled bool   `json:"biometric_enabled"`
}

// Transaction mirrors one statement entry
type Transaction struct {
	ID          string     `json:"id"`
	Type        string     `json:"tx_type"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	AmountCents int64      `json:"amount_cents"`
	CreatedAt   *time.Time `json:"created_at"`
}

// Card mirrors one payment card
type Card struct {
	ID         string `json:"id"`
	Brand      string `json:"brand"`
	LastFour   string `json:"last_four"`
	Holder     string `json:"holder"`
	Expiry     string `json:"expiry"`
	LimitCents int64  `json:"limit_cents"`
	Status     string `json:"status"`
}

// SecuritySettings mirrors the account security state
type SecuritySettings struct {
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	TwoFactorMethod  string `json:"two_factor_method"`
	BiometricEnabled bool   `json:"biometric_enabled"`
}

// RegisterProfile carries the registration fields
type RegisterProfile struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	CPF             string `json:"cpf"`
	RG              string `json:"rg,omitempty"`
	Phone           string `json:"phone_number"`
	BirthDate       string `json:"birth_date,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	ZipCode         string `json:"zip_code,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks the password pair before anything leaves the machine
func (p RegisterProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&p.ConfirmPassword, validation.Required,
			validation.By(func(any) error {
				if p.ConfirmPassword != p.Password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			})),
	)
}

// Client talks to the wallet backend
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Verify exchanges a persisted token for the user profile. Any failure,
// transport included, comes back as ErrUnauthorized.
func (c *Client) Verify(ctx context.Context, token string) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, user); err != nil {
		return nil, errors.Wrap(err, errors.CategoryAuth, ErrUnauthorized.Message).
			WithTextCode(ErrUnauthorized.TextCode)
	}
	return user, nil
}

// Login exchanges credentials for a token, then resolves the profile in
// the same logical operation
func (c *Client) Login(ctx context.Context, email, password string) (string, *User, error) {
	payload := map[string]string{
		"identifier": email,
		"password":   password,
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}

	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", payload, &res); err != nil {
		return "", nil, errors.Wrap(err, errors.CategoryAuth, ErrInvalidCredentials.Message).
			WithTextCode(ErrInvalidCredentials.TextCode)
	}

	user, err := c.Verify(ctx, res.AccessToken)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CategoryAuth, ErrInvalidCredentials.Message).
			WithTextCode(ErrInvalidCredentials.TextCode)
	}

	return res.AccessToken, user, nil
}

// Register creates an account. It does not authenticate the caller.
func (c *Client) Register(ctx context.Context, profile RegisterProfile) error {
	if err := profile.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, ErrValidation.Message).
			WithTextCode(ErrValidation.TextCode)
	}

	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", profile, nil); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, ErrValidation.Message).
			WithTextCode(ErrValidation.TextCode)
	}
	return nil
}

func (c *Client) Balance(ctx context.Context, token string) (int64, error) {
	var res struct {
		BalanceCents int64 `json:"balance_cents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/balance", token, nil, &res); err != nil {
		return 0, err
	}
	return res.BalanceCents, nil
}

func (c *Client) Transactions(ctx context.Context, token string, limit int) ([]Transaction, error) {
	path := "/api/transactions"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var res []Transaction
	if err := c.do(ctx, http.MethodGet, path, token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Cards(ctx context.Context, token string) ([]Card, error) {
	var res []Card
	if err := c.do(ctx, http.MethodGet, "/api/cards", token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) SecuritySettings(ctx context.Context, token string) (*SecuritySettings, error) {
	res := &SecuritySettings{}
	if err := c.do(ctx, http.MethodGet, "/api/user/security-settings", token, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// EnableTwoFactor stages a second factor, returning the otpauth URI
// when the method is totp
func (c *Client) EnableTwoFactor(ctx context.Context, token, method string) (string, error) {
	payload := map[string]string{"method": method}

	var res struct {
		OTPAuthURI string `json:"otpauth_uri"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user/enable-2fa", token, payload, &res); err != nil {
		return "", err
	}
	return res.OTPAuthURI, nil
}

func (c *Client) VerifyTwoFactor(ctx context.Context, token, code string) error {
	payload := map[string]string{"code": code}
	return c.do(ctx, http.MethodPost, "/api/user/verify-2fa", token, payload, nil)
}

func (c *Client) SendEmailCode(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/user/send-email-2fa", token, map[string]string{}, nil)
}

func (c *Client) SetBiometric(ctx context.Context, token string, enabled bool) error {
	payload := map[string]bool{"enabled": enabled}
	return c.do(ctx, http.MethodPost, "/api/user/biometric", token, payload, nil)
}

// UpdateData changes profile fields, confirmed with the current password
func (c *Client) UpdateData(ctx context.Context, token, currentPassword string, fields map[string]string) (*User, error) {
	payload := map[string]string{"current_password": currentPassword}
	for k, v := range fields {
		payload[k] = v
	}

	user := &User{}
	if err := c.do(ctx, http.MethodPut, "/api/user/update-data", token, payload, user); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, ErrValidation.Message).
			WithTextCode(ErrValidation.TextCode)
	}
	return user, nil
}

// Company mirrors one portfolio entry of the holding site
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Segment     string `json:"segment"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website"`
	SortOrder   int    `json:"sort_order"`
	Active      bool   `json:"is_active"`
}

// ContentSection mirrors one editable site section
type ContentSection struct {
	ID       string         `json:"id"`
	Key      string         `json:"section_key"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Body     map[string]any `json:"body"`
}

// SiteConfig mirrors the singleton site configuration
type SiteConfig struct {
	SiteName     string         `json:"site_name"`
	LogoURL      string         `json:"logo_url"`
	PrimaryColor string         `json:"primary_color"`
	ContactEmail string         `json:"contact_email"`
	Social       map[string]any `json:"social"`
}

func (c *Client) Companies(ctx context.Context, token string, all bool) ([]Company, error) {
	path := "/api/companies"
	if all {
		path += "?all=true"
	}

	var res []Company
	if err := c.do(ctx, http.MethodGet, path, token, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateCompany(ctx context.Context, token string, company Company) (*Company, error) {
	res := &Company{}
	if err := c.do(ctx, http.MethodPost, "/api/companies", token, company, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UpdateCompany(ctx context.Context, token, id string, company Company) (*Company, error) {
	res := &Company{}
	if err := c.do(ctx, http.MethodPut, "/api/companies/"+id, token, company, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DeleteCompany(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/companies/"+id, token, nil, nil)
}

func (c *Client) Content(ctx context.Context) ([]ContentSection, error) {
	var res []ContentSection
	if err := c.do(ctx, http.MethodGet, "/api/content", "", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UpdateContent(ctx context.Context, token string, section ContentSection) (*ContentSection, error) {
	res := &ContentSection{}
	if err := c.do(ctx, http.MethodPut, "/api/content/"+section.Key, token, section, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) SiteConfig(ctx context.Context) (*SiteConfig, error) {
	res := &SiteConfig{}
	if err := c.do(ctx, http.MethodGet, "/api/config", "", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UpdateSiteConfig(ctx context.Context, token string, cfg SiteConfig) (*SiteConfig, error) {
	res := &SiteConfig{}
	if err := c.do(ctx, http.MethodPut, "/api/config", token, cfg, res); err != nil {
		return nil, err
	}
	return res, nil
}

// UploadCompanyLogo sends an image as multipart form data and returns
// the public URL of the stored file
func (c *Client) UploadCompanyLogo(ctx context.Context, token, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to build upload")
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read upload")
	}
	if err := mw.Close(); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to finish upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/company-logo", &buf)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "request failed").
			WithTextCode("NETWORK_FAILURE")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", errors.New(fmt.Sprintf("unexpected status %d", res.StatusCode), errors.CategoryOperation).
			WithTextCode("HTTP_ERROR")
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, errors.CategoryOperation, "failed to decode response")
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "request failed").
			WithTextCode("NETWORK_FAILURE")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		return errors.New(fmt.Sprintf("unexpected status %d", res.StatusCode), errors.CategoryOperation).
			WithTextCode("HTTP_ERROR").
			WithMetadata(map[string]any{
				"status": res.StatusCode,
				"body":   string(raw),
			})
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to decode response")
	}

	return nil
}
