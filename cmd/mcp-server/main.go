package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quantum-coin/internal/bootstrap"
	"quantum-coin/internal/config"
	"quantum-coin/internal/logger"
	"quantum-coin/internal/mcpserver"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	// stdout carries the MCP protocol
	lg := logger.NewWithConsole(zapcore.Lock(os.Stderr), cfg.LogFilePath, cfg.LogJSON)
	defer func() { _ = lg.Sync() }()

	chatSvc, _, err := bootstrap.NewChat(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build chat service", zap.Error(err))
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quantum-coin-mcp",
		Version: "1.0.0",
	}, nil)
	mcpserver.New(chatSvc, lg.Named("mcp")).Register(server)

	lg.Info("starting MCP server on stdin/stdout", zap.Strings("tools", []string{"ask_quantumbot", "suggested_queries"}))
	if err := server.Run(context.Background(), mcp.NewStdioTransport()); err != nil {
		lg.Fatal("mcp server failed", zap.Error(err))
	}
}
