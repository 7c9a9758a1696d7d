// Package cli is the interactive terminal front end of the wallet. It
// drives the session manager through a small REPL and renders wallet,
// security and profile views.
package cli

import (
	"bufio"
	"context"
	"net/http"
	"os"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/client/api"
	"github.com/vornexz/pay/internal/client/config"
	"github.com/vornexz/pay/internal/client/session"
	"github.com/vornexz/pay/internal/client/store"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Manager
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	var tokens store.TokenStore
	if c.TokenPath != "" {
		tokens = store.NewFileStoreAt(c.TokenPath)
	} else {
		fs, err := store.NewFileStore()
		if err != nil {
			return nil, err
		}
		tokens = fs
	}

	apiClient := api.New(c.ServerBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}))

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewManager(tokens, apiClient),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) WithLogger(l auth.Logger) *App {
	a.session.WithLogger(l)
	return a
}

// Run restores the persisted session, then hands control to the REPL
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to VornexZ Pay (type 'help' for commands)")

	a.session.Start(ctx)
	if snap := a.session.Snapshot(); snap.State == session.Authenticated {
		printlnFn("Welcome back,", snap.User.FullName)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(session.WithContext(ctx, a.session), a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State == session.Authenticated
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.State == session.Authenticated && snap.User != nil {
		return "(" + snap.User.Email + ")"
	}
	return ""
}

// token returns the bearer token for resource calls
func (a *App) token() string {
	return a.session.Token()
}
