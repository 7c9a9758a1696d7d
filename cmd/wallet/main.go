package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-logger/glog"

	"github.com/vornexz/pay/internal/auth"
	"github.com/vornexz/pay/internal/client/cli"
	"github.com/vornexz/pay/internal/client/config"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("wallet"),
		glog.WithAddSource(false),
	)

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		lgr.GetLogger("wallet").Error("failed to start", "error", err)
		os.Exit(1)
	}

	app.WithLogger(authLogger{lgr.GetLogger("session")}).Run(context.Background())
}

// authLogger narrows a structured glog logger to the printf surface the
// session manager expects
type authLogger struct {
	l glog.Logger
}

func (a authLogger) Debug(format string, args ...any) { a.l.Debug(fmt.Sprintf(format, args...)) }
func (a authLogger) Info(format string, args ...any)  { a.l.Info(fmt.Sprintf(format, args...)) }
func (a authLogger) Error(format string, args ...any) { a.l.Error(fmt.Sprintf(format, args...)) }

var _ auth.Logger = authLogger{}
