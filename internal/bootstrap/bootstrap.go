// Package bootstrap assembles the application components from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"quantum-coin/internal/analysis"
	"quantum-coin/internal/chat"
	"quantum-coin/internal/config"
	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/llm"
	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/responder"
	"quantum-coin/internal/scheduler"
	"quantum-coin/internal/server"
	"quantum-coin/internal/storage"
	"quantum-coin/internal/wallet"
)

// ReadSystemPrompt returns the prompt file contents, or "" when it is missing.
func ReadSystemPrompt(path string, logger *zap.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Info("system prompt not loaded, using default", zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(data)
}

// NewGenerator returns nil when no LLM provider is configured.
func NewGenerator(cfg *config.Config, logger *zap.Logger) (responder.Generator, error) {
	client, err := llm.NewFactory(cfg).CreateClient(cfg.LLMProvider)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	if client == nil {
		logger.Info("no llm provider configured, answering from the knowledge base only")
		return nil, nil
	}
	logger.Info("llm provider configured", zap.String("provider", string(cfg.LLMProvider)))
	return responder.NewLLMGenerator(client, ReadSystemPrompt(cfg.SystemPromptPath, logger)), nil
}

// NewChat builds the conversation service shared by every front-end.
func NewChat(cfg *config.Config, logger *zap.Logger) (*chat.Service, responder.Generator, error) {
	gen, err := NewGenerator(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	opts := []responder.Option{responder.WithLogger(logger.Named("responder"))}
	if gen != nil {
		opts = append(opts, responder.WithGenerator(gen))
	}
	r := responder.New(knowledge.Default(), opts...)
	return chat.NewService(r, history.NewManager(), logger.Named("chat")), gen, nil
}

// Container holds the components of the HTTP service.
type Container struct {
	Chat      *chat.Service
	Store     storage.Store
	Prices    pricefeed.Feed
	Analyzer  *analysis.Analyzer
	Scheduler *scheduler.Scheduler
	Server    *server.Server
}

func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	chatSvc, gen, err := NewChat(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFileStore(cfg.StoreFilePath, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rnd := wallet.NewRand(cfg.RandomSeed)
	prices := pricefeed.NewCached(pricefeed.NewSimulated(rnd), cfg.PriceCacheTTL)

	analyzer := analysis.NewAnalyzer(prices, gen, rnd, logger.Named("analysis"))
	analyzer.SetNeural(cfg.AnalysisNeuralStart)

	sched := scheduler.New(cfg.AnalysisSchedule, logger.Named("scheduler"))
	sched.SetJob(func(ctx context.Context) error {
		_, err := analyzer.Generate(ctx)
		return err
	})

	handshake := &wallet.SimulatedHandshake{
		MinDelay: cfg.HandshakeMinDelay,
		MaxDelay: cfg.HandshakeMaxDelay,
		FailRate: cfg.HandshakeFailRate,
		Rand:     rnd,
	}
	srv := server.New(cfg.HTTPAddr, cfg.ClientIdleTTL, server.Deps{
		Chat:     chatSvc,
		Analyzer: analyzer,
		Trigger:  sched,
		Prices:   prices,
		Store:    store,
		WalletOptions: []wallet.Option{
			wallet.WithHandshaker(handshake),
			wallet.WithRand(rnd),
			wallet.WithHandshakeTimeout(cfg.HandshakeTimeout),
		},
		Logger: logger.Named("http"),
	})

	return &Container{
		Chat:      chatSvc,
		Store:     store,
		Prices:    prices,
		Analyzer:  analyzer,
		Scheduler: sched,
		Server:    srv,
	}, nil
}
