package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/server"
	"github.com/vornexz/pay/internal/server/config"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("vornexz"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.Load()
	if err != nil {
		lgr.GetLogger("config").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	app, err := server.New(ctx, cfg, authLogger{lgr.GetLogger("server")})
	if err != nil {
		lgr.GetLogger("server").Error("failed to start", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := app.Listen(); err != nil {
			lgr.GetLogger("server").Error("listener stopped", "error", err)
			os.Exit(1)
		}
	}()

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		lgr.GetLogger("server").Error("shutdown failed", "error", err)
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

// authLogger narrows a structured glog logger to the printf surface the
// auth packages expect
type authLogger struct {
	l glog.Logger
}

func (a authLogger) Debug(format string, args ...any) { a.l.Debug(fmt.Sprintf(format, args...)) }
func (a authLogger) Info(format string, args ...any)  { a.l.Info(fmt.Sprintf(format, args...)) }
func (a authLogger) Error(format string, args ...any) { a.l.Error(fmt.Sprintf(format, args...)) }

var _ auth.Logger = authLogger{}
