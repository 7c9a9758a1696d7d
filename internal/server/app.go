// Package server wires the HTTP API: auth, wallet, account security and
// the holding site CMS.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server/config"
	"github.com/vornexz/pay/internal/server/handlers"
	"github.com/vornexz/pay/internal/server/middleware/jwtware"
	"github.com/vornexz/pay/internal/server/repository"
)

// App holds the assembled server
type App struct {
	cfg    *config.Config
	fiber  *fiber.App
	repo   repository.Manager
	auther *auth.Auther
	logger auth.Logger
}

// New builds the application: opens the database, bootstraps the schema,
// seeds baseline records and registers all routes.
func New(ctx context.Context, cfg *config.Config, logger auth.Logger) (*App, error) {
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	db, err := repository.OpenDB(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := repository.CreateTables(ctx, db); err != nil {
		return nil, err
	}

	repo := repository.NewManager(db)
	repo.MustValidate()

	tracker := repository.NewAccountTracker(repo.Users())
	provider := auth.NewIdentityProvider(tracker).WithLogger(logger)
	auther := auth.NewAuthenticator(provider, cfg).WithLogger(logger)

	if err := Seed(ctx, repo, cfg, logger); err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		repo:   repo,
		auther: auther,
		logger: logger,
	}
	app.fiber = app.buildRouter()

	return app, nil
}

// Repo exposes the repository manager, used by tests
func (a *App) Repo() repository.Manager { return a.repo }

// Router exposes the fiber app, used by tests
func (a *App) Router() *fiber.App { return a.fiber }

// Listen starts serving
func (a *App) Listen() error {
	return a.fiber.Listen(fmt.Sprintf(":%d", a.cfg.Port))
}

// Shutdown drains and stops the server
func (a *App) Shutdown() error {
	return a.fiber.Shutdown()
}

func (a *App) buildRouter() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "vornexz-pay",
	})

	app.Use(recover.New())
	app.Use(cors.New())

	authRequired := jwtware.New(a.jwtConfig(""))
	adminRequired := jwtware.New(a.jwtConfig(auth.RoleAdmin))

	authHandler := handlers.NewAuthHandler(a.auther, a.repo, a.logger)
	walletHandler := handlers.NewWalletHandler(a.repo, a.logger)
	securityHandler := handlers.NewSecurityHandler(a.repo, a.logger)
	cmsHandler := handlers.NewCMSHandler(a.repo, a.cfg.UploadDir, a.logger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/me", authRequired, authHandler.Me)

	api.Get("/balance", authRequired, walletHandler.Balance)
	api.Get("/transactions", authRequired, walletHandler.Transactions)
	api.Post("/transactions", authRequired, walletHandler.CreateTransaction)
	api.Get("/cards", authRequired, walletHandler.Cards)

	user := api.Group("/user", authRequired)
	user.Get("/security-settings", securityHandler.Settings)
	user.Put("/update-data", securityHandler.UpdateData)
	user.Post("/enable-2fa", securityHandler.EnableTwoFactor)
	user.Get("/2fa-qr", securityHandler.TwoFactorQR)
	user.Post("/send-email-2fa", securityHandler.SendEmailCode)
	user.Post("/verify-2fa", securityHandler.VerifyTwoFactor)
	user.Post("/biometric", securityHandler.Biometric)

	api.Get("/companies", cmsHandler.ListCompanies)
	api.Post("/companies", adminRequired, cmsHandler.CreateCompany)
	api.Get("/companies/:id", cmsHandler.GetCompany)
	api.Put("/companies/:id", adminRequired, cmsHandler.UpdateCompany)
	api.Delete("/companies/:id", adminRequired, cmsHandler.DeleteCompany)

	api.Get("/content", cmsHandler.ListContent)
	api.Get("/content/:key", cmsHandler.GetContent)
	api.Put("/content/:key", adminRequired, cmsHandler.UpdateContent)

	api.Get("/config", cmsHandler.GetSiteConfig)
	api.Put("/config", adminRequired, cmsHandler.UpdateSiteConfig)

	api.Post("/upload/logo", adminRequired, cmsHandler.UploadLogo)
	api.Post("/upload/company-logo", adminRequired, cmsHandler.UploadCompanyLogo)

	app.Static("/uploads", a.cfg.UploadDir)

	return app
}

// jwtConfig builds the middleware configuration. Tokens are normally
// validated by our own TokenService; with JWT_JWK_SET_URLS set, the
// signature check moves to the remote JWK Sets instead.
func (a *App) jwtConfig(minRole string) jwtware.Config {
	cfg := jwtware.Config{
		TokenLookup:     a.cfg.TokenLookup,
		AuthScheme:      a.cfg.AuthScheme,
		ContextKey:      a.cfg.ContextKey,
		MinimumRole:     minRole,
		ContextEnricher: enrichContext,
	}
	if len(a.cfg.JWKSetURLs) > 0 {
		cfg.JWKSetURLs = a.cfg.JWKSetURLs
	} else {
		cfg.TokenValidator = tokenValidatorAdapter{a.auther.TokenService()}
	}
	return cfg
}

// tokenValidatorAdapter narrows TokenService to the middleware interface
type tokenValidatorAdapter struct {
	service auth.TokenService
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func enrichContext(ctx context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(auth.AuthClaims)
	if !ok {
		return ctx
	}
	return auth.WithClaimsContext(ctx, authClaims)
}
