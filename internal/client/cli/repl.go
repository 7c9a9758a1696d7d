package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/vornexz/pay/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Balance(ctx context.Context) error
	Transactions(ctx context.Context) error
	Cards(ctx context.Context) error
	Security(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Admin(ctx context.Context) error
	Logout(ctx context.Context) error
}

// protectedCommands are gated behind the route guard: without a session
// they bounce to the login prompt instead of running.
var protectedCommands = map[string]bool{
	"balance":      true,
	"transactions": true,
	"txs":          true,
	"cards":        true,
	"security":     true,
	"profile":      true,
	"update":       true,
	"admin":        true,
}

// runREPL starts a read-eval-print loop for the wallet CLI. It reads a
// line from the scanner, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on scanner EOF or when the user types "exit"
// or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pay> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if protectedCommands[cmd] {
			if d := guardDecision(ctx, a); d.Action != session.Render {
				printlnFn("Please login first")
				continue
			}
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: balance, (txs)transactions, cards, security, profile, update, admin, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "txs", "transactions":
			_ = a.Transactions(ctx)

		case "cards":
			_ = a.Cards(ctx)

		case "security":
			_ = a.Security(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// guardDecision consults the route guard when a session manager rides
// on the context, falling back to the exec's own view of the session.
func guardDecision(ctx context.Context, a execIface) session.Decision {
	if mgr, ok := session.FromContext(ctx); ok {
		return session.Protected(mgr.Snapshot(), "login")
	}
	if a.isLoggedIn() {
		return session.Decision{Action: session.Render}
	}
	return session.Decision{Action: session.Redirect, Target: "login"}
}
