// Package server exposes the chat, wallet and dashboard operations as a JSON
// API for the web front-end.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"quantum-coin/internal/analysis"
	"quantum-coin/internal/chat"
	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/storage"
	"quantum-coin/internal/wallet"
)

const (
	clientHeader    = "X-Client-ID"
	anonymousClient = "anonymous"
)

// Trigger reruns the analysis job out of band.
type Trigger interface {
	RunNow()
}

type Deps struct {
	Chat     *chat.Service
	Analyzer *analysis.Analyzer
	Trigger  Trigger
	Prices   pricefeed.Feed
	Store    storage.Store
	// WalletOptions is applied to every per-client wallet manager.
	WalletOptions []wallet.Option
	Logger        *zap.Logger
}

type Server struct {
	deps      Deps
	logger    *zap.Logger
	server    *http.Server
	addr      string
	startTime time.Time

	clientsMu sync.Mutex
	clients   *cache.Cache
}

// client is the per-client state held in the registry. Its conversation
// lives in the chat service under the same id and is dropped on eviction.
type client struct {
	mu     sync.Mutex
	wallet *wallet.Manager
}

func New(addr string, idleTTL time.Duration, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	s := &Server{
		deps:      deps,
		logger:    logger,
		addr:      addr,
		startTime: time.Now(),
		clients:   cache.New(idleTTL, min(idleTTL, 10*time.Minute)),
	}
	s.clients.OnEvicted(func(id string, _ any) {
		if s.deps.Chat != nil {
			s.deps.Chat.Reset(id)
		}
		s.logger.Debug("client evicted", zap.String("client", id))
	})
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", s.handleStatus)

	mux.HandleFunc("POST /api/chat", s.handleChatSend)
	mux.HandleFunc("GET /api/chat/history", s.handleChatHistory)
	mux.HandleFunc("GET /api/chat/suggestions", s.handleChatSuggestions)
	mux.HandleFunc("POST /api/chat/reset", s.handleChatReset)

	mux.HandleFunc("GET /api/wallet", s.handleWallet)
	mux.HandleFunc("GET /api/wallet/kinds", s.handleWalletKinds)
	mux.HandleFunc("POST /api/wallet/connect", s.handleWalletConnect)
	mux.HandleFunc("POST /api/wallet/disconnect", s.handleWalletDisconnect)
	mux.HandleFunc("POST /api/wallet/refresh", s.handleWalletRefresh)

	mux.HandleFunc("GET /api/language", s.handleLanguageGet)
	mux.HandleFunc("POST /api/language", s.handleLanguageSet)

	mux.HandleFunc("GET /api/analysis", s.handleAnalysis)
	mux.HandleFunc("POST /api/analysis/neural", s.handleAnalysisNeural)
	mux.HandleFunc("GET /api/prices", s.handlePrices)

	return s.logRequests(mux)
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the listener down. It is safe to call before or
// concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// client returns the registry entry for the request's client, creating it
// on first use. Every call slides the idle expiry.
func (s *Server) client(r *http.Request) (string, *client) {
	id := clientID(r)

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if v, ok := s.clients.Get(id); ok {
		s.clients.SetDefault(id, v)
		return id, v.(*client)
	}
	// An expired entry the janitor has not collected yet still owns a
	// conversation; deleting it runs the eviction hook.
	s.clients.Delete(id)
	c := &client{}
	s.clients.SetDefault(id, c)
	return id, c
}

// conversation marks the client active and returns its conversation id.
func (s *Server) conversation(r *http.Request) string {
	id, _ := s.client(r)
	return id
}

// wallet returns the client's wallet manager, creating it on first use. A
// new manager tries to restore the client's saved wallet before the request
// proceeds, so the first response already reflects the reconnect.
func (s *Server) wallet(r *http.Request) *wallet.Manager {
	id, c := s.client(r)

	c.mu.Lock()
	if c.wallet != nil {
		m := c.wallet
		c.mu.Unlock()
		return m
	}
	opts := append([]wallet.Option{
		wallet.WithLogger(s.logger.With(zap.String("client", id))),
	}, s.deps.WalletOptions...)
	m := wallet.NewManager(storage.NewNamespaced(s.deps.Store, id), opts...)
	c.wallet = m
	c.mu.Unlock()

	// A dropped request must not count as a failed handshake.
	ctx := context.WithoutCancel(r.Context())
	if _, err := m.AttemptSilentReconnect(ctx); err != nil && !errors.Is(err, wallet.ErrNotFound) {
		s.logger.Info("silent reconnect failed", zap.String("client", id), zap.Error(err))
	}
	return m
}

func clientID(r *http.Request) string {
	if id := r.Header.Get(clientHeader); id != "" {
		return id
	}
	return anonymousClient
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("client", clientID(r)),
			zap.Duration("took", time.Since(start)))
	})
}
