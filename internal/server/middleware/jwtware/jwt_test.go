package jwtware_test

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/server/middleware/jwtware"
)

type stubClaims struct {
	subject string
	role    string
}

func (s stubClaims) Subject() string { return s.subject }
func (s stubClaims) UserID() string  { return s.subject }
func (s stubClaims) Role() string    { return s.role }
func (s stubClaims) HasRole(role string) bool {
	return s.role == role
}
func (s stubClaims) IsAtLeast(minRole string) bool {
	hierarchy := map[string]int{"guest": 0, "member": 1, "admin": 2, "owner": 3}
	return hierarchy[s.role] >= hierarchy[minRole]
}

type stubValidator struct {
	claims jwtware.AuthClaims
	err    error
}

func (s stubValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newTestApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Use(jwtware.New(cfg))
	app.Get("/protected", func(c *fiber.Ctx) error {
		claims := c.Locals("user").(jwtware.AuthClaims)
		return c.JSON(fiber.Map{"subject": claims.Subject()})
	})
	return app
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{subject: "user-1", role: "member"}},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{subject: "user-1", role: "member"}},
	})

	req := httptest.NewRequest("GET", "/protected", nil)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{err: errors.New("token expired")},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareEnforcesMinimumRole(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{subject: "user-1", role: "member"}},
		MinimumRole:    "admin",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareAllowsSufficientRole(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{subject: "admin-1", role: "owner"}},
		MinimumRole:    "admin",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestMiddlewareQueryExtractor(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{subject: "user-1", role: "member"}},
		TokenLookup:    "query:auth_token",
	})

	req := httptest.NewRequest("GET", "/protected?auth_token=sometoken", nil)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func signHS256(t *testing.T, secret []byte, kid, subject, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = kid

	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestMiddlewareValidatesWithSigningKeys(t *testing.T) {
	secret := []byte("external-issuer-secret")

	app := newTestApp(jwtware.Config{
		SigningKeys: map[string]jwtware.SigningKey{
			"k1": {JWTAlg: "HS256", Key: secret},
		},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, secret, "k1", "user-1", "member"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, []byte("wrong-secret"), "k1", "user-1", "member"))

	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestMiddlewareEnforcesRoleOnSigningKeyPath(t *testing.T) {
	secret := []byte("external-issuer-secret")

	app := newTestApp(jwtware.Config{
		SigningKeys: map[string]jwtware.SigningKey{
			"k1": {JWTAlg: "HS256", Key: secret},
		},
		MinimumRole: "admin",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, secret, "k1", "user-1", "member"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, secret, "k1", "admin-1", "admin"))

	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestMiddlewareValidatesWithJWKSetURL(t *testing.T) {
	secret := []byte("jwks-issuer-secret")

	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"keys":[{"kty":"oct","kid":"k1","alg":"HS256","k":%q}]}`,
			base64.RawURLEncoding.EncodeToString(secret))
	}))
	defer jwks.Close()

	app := newTestApp(jwtware.Config{
		JWKSetURLs: []string{jwks.URL},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, secret, "k1", "user-1", "member"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestMiddlewareFilterSkips(t *testing.T) {
	app := fiber.New()
	app.Use(jwtware.New(jwtware.Config{
		TokenValidator: stubValidator{err: errors.New("should not be called")},
		Filter: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/health", nil)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
