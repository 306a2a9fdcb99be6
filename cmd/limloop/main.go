package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/limloop/limloop/internal/app"
	"github.com/limloop/limloop/internal/config"
	"github.com/limloop/limloop/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// Channels for signals
	osSigCh := make(chan os.Signal, 1)
	signal.Notify(osSigCh, syscall.SIGINT, syscall.SIGTERM)
	errCh := make(chan error)

	//Creating main ctx
	ctx, cancel := context.WithCancel(context.Background())

	// .env is optional, env vars win anyway
	godotenv.Load()

	// Config initialization
	appCfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("application config initialisation failed err: %v", err)
	}

	// App initialization
	app := app.NewApp(*appCfg)
	// App starting with configuration
	go func() {
		if err := app.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case sig := <-osSigCh:
		logger.Log.Info("Stopping application, os sig received", zap.String("signal", sig.String()))
		app.Stop(cancel)
	case err := <-errCh:
		logger.Log.Error("Application error", zap.Error(err))
		app.Stop(cancel)
	}
}
