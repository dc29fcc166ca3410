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
	"quantum-coin/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	lg := logger.New(cfg.LogFilePath, cfg.LogJSON)
	defer func() { _ = lg.Sync() }()

	if cfg.TelegramBotToken == "" {
		lg.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	chatSvc, _, err := bootstrap.NewChat(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build chat service", zap.Error(err))
	}

	bot, err := telegram.New(cfg.TelegramBotToken, chatSvc, cfg.MessageParseMode, lg.Named("telegram"))
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	bot.Start(ctx)
}
