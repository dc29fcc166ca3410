package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quantum-coin/internal/bootstrap"
	"quantum-coin/internal/config"
	"quantum-coin/internal/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	lg := logger.New(cfg.LogFilePath, cfg.LogJSON)
	defer func() { _ = lg.Sync() }()

	c, err := bootstrap.NewContainer(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build application", zap.Error(err))
	}

	if err := c.Scheduler.Start(); err != nil {
		lg.Fatal("failed to start analysis scheduler", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- c.Server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("http server failed", zap.Error(err))
		}
	case <-ctx.Done():
		lg.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := c.Server.Stop(shutdownCtx); err != nil {
		lg.Warn("http shutdown", zap.Error(err))
	}
	c.Scheduler.Stop()
}
