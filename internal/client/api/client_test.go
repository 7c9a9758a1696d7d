package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/client/api"
)

func textCode(t *testing.T, err error) string {
	t.Helper()
	var werr *goerrors.Error
	require.True(t, errors.As(err, &werr))
	return werr.TextCode
}

func TestVerifyReturnsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-valid", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(api.User{
			Email:   "demo@vornexz.com",
			Role:    "member",
			Balance: 125_000,
		})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	user, err := client.Verify(context.Background(), "tok-valid")
	require.NoError(t, err)
	assert.Equal(t, "demo@vornexz.com", user.Email)
	assert.Equal(t, int64(125_000), user.Balance)
}

func TestVerifyRejectedTokenIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	_, err := client.Verify(context.Background(), "tok-stale")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", textCode(t, err))
}

func TestVerifyTransportFailureIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := api.New(srv.URL)

	_, err := client.Verify(context.Background(), "tok-valid")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", textCode(t, err))
}

func TestLoginResolvesTokenAndProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "demo@vornexz.com", body["identifier"])
			assert.Equal(t, "demo123", body["password"])

			json.NewEncoder(w).Encode(map[string]string{
				"access_token": "tok-fresh",
				"token_type":   "bearer",
			})
		case "/api/auth/me":
			assert.Equal(t, "Bearer tok-fresh", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(api.User{Email: "demo@vornexz.com"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	token, user, err := client.Login(context.Background(), "demo@vornexz.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "tok-fresh", token)
	assert.Equal(t, "demo@vornexz.com", user.Email)
}

func TestLoginRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	_, _, err := client.Login(context.Background(), "demo@vornexz.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", textCode(t, err))
}

func TestRegisterRejectedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{"cpf": "must be a valid CPF"},
		})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	err := client.Register(context.Background(), api.RegisterProfile{
		Email:           "bad",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", textCode(t, err))
}

func TestRegisterValidatesPasswordsLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the backend")
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	err := client.Register(context.Background(), api.RegisterProfile{
		Password:        "short",
		ConfirmPassword: "short",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", textCode(t, err))

	err = client.Register(context.Background(), api.RegisterProfile{
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", textCode(t, err))
}

func TestBalanceAndTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-valid", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/balance":
			json.NewEncoder(w).Encode(map[string]int64{"balance_cents": 123_800})
		case "/api/transactions":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			json.NewEncoder(w).Encode([]api.Transaction{
				{Type: "debit", Description: "Market", AmountCents: 1_200},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	balance, err := client.Balance(context.Background(), "tok-valid")
	require.NoError(t, err)
	assert.Equal(t, int64(123_800), balance)

	txs, err := client.Transactions(context.Background(), "tok-valid", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Market", txs[0].Description)
}

func TestUpdateDataSendsCurrentPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/user/update-data", r.URL.Path)
		assert.Equal(t, "Bearer tok-valid", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "demo123", body["current_password"])
		assert.Equal(t, "Maria Souza", body["full_name"])

		json.NewEncoder(w).Encode(api.User{Email: "demo@vornexz.com", FullName: "Maria Souza"})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	user, err := client.UpdateData(context.Background(), "tok-valid", "demo123", map[string]string{
		"full_name": "Maria Souza",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", user.FullName)
}

func TestCompanyLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/companies":
			assert.Equal(t, "true", r.URL.Query().Get("all"))
			json.NewEncoder(w).Encode([]api.Company{{ID: "co-1", Name: "Acme Fintech SA"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/companies":
			var body api.Company
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body.ID = "co-2"
			json.NewEncoder(w).Encode(body)
		case r.Method == http.MethodPut && r.URL.Path == "/api/companies/co-2":
			json.NewEncoder(w).Encode(api.Company{ID: "co-2", Name: "Beta Capital"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/companies/co-2":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	ctx := context.Background()

	companies, err := client.Companies(ctx, "tok-admin", true)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Fintech SA", companies[0].Name)

	created, err := client.CreateCompany(ctx, "tok-admin", api.Company{Name: "Beta Capital"})
	require.NoError(t, err)
	assert.Equal(t, "co-2", created.ID)

	updated, err := client.UpdateCompany(ctx, "tok-admin", "co-2", api.Company{Name: "Beta Capital"})
	require.NoError(t, err)
	assert.Equal(t, "Beta Capital", updated.Name)

	require.NoError(t, client.DeleteCompany(ctx, "tok-admin", "co-2"))
}

func TestContentAndSiteConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/content":
			json.NewEncoder(w).Encode([]api.ContentSection{{Key: "hero", Title: "Welcome"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/content/hero":
			assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(api.ContentSection{Key: "hero", Title: "Updated"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/config":
			json.NewEncoder(w).Encode(api.SiteConfig{SiteName: "VornexZ"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/config":
			assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(api.SiteConfig{SiteName: "VornexZ Pay"})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	ctx := context.Background()

	sections, err := client.Content(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "hero", sections[0].Key)

	section, err := client.UpdateContent(ctx, "tok-admin", api.ContentSection{Key: "hero", Title: "Updated"})
	require.NoError(t, err)
	assert.Equal(t, "Updated", section.Title)

	cfg, err := client.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VornexZ", cfg.SiteName)

	saved, err := client.UpdateSiteConfig(ctx, "tok-admin", api.SiteConfig{SiteName: "VornexZ Pay"})
	require.NoError(t, err)
	assert.Equal(t, "VornexZ Pay", saved.SiteName)
}

func TestUploadCompanyLogo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/upload/company-logo", r.URL.Path)
		assert.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "logo.png", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(content))

		json.NewEncoder(w).Encode(map[string]string{"url": "/uploads/companies/logo.png"})
	}))
	defer srv.Close()

	client := api.New(srv.URL)

	url, err := client.UploadCompanyLogo(context.Background(), "tok-admin", "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/companies/logo.png", url)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := api.New(srv.URL)

	_, err := client.Balance(context.Background(), "tok-valid")
	require.Error(t, err)
}
