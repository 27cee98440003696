package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sumor0v0/second-hand-trade/internal/market/bootstrap"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/env"
	"github.com/sumor0v0/second-hand-trade/internal/pkg/logging"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLogger := logging.NewStdoutLogger(os.Getenv(env.EnvLogLevel))

	cfg, err := bootstrap.LoadConfig(defaultLogger)
	if err != nil {
		defaultLogger.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	app := bootstrap.NewMarketApp(cfg, defaultLogger)
	defer app.Shutdown()

	if err := app.Run(mainCtx); err != nil {
		defaultLogger.Error("market service stopped with error", "error", err.Error())
		return
	}

	defaultLogger.Info("market service stopped")
}
