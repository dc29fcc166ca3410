package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"quantum-coin/internal/analysis"
	"quantum-coin/internal/chat"
	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/responder"
	"quantum-coin/internal/wallet"
)

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

type walletResponse struct {
	Kind         wallet.Kind          `json:"walletKind"`
	Address      *string              `json:"address"`
	Status       wallet.Status        `json:"status"`
	Balances     map[string]string    `json:"balances"`
	Transactions []wallet.Transaction `json:"transactions"`
	LastError    string               `json:"lastError,omitempty"`
}

func toWalletResponse(s wallet.Session) walletResponse {
	return walletResponse{
		Kind:         s.Kind,
		Address:      s.Address,
		Status:       s.Status,
		Balances:     wallet.FormatBalances(s.Balances),
		Transactions: s.Transactions,
		LastError:    s.LastError,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes. Retryable errors are
// the transient ones the UI shows as a notice.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	retryable := false
	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, wallet.ErrUnsupported),
		errors.Is(err, wallet.ErrInvalidLanguage),
		errors.Is(err, pricefeed.ErrUnknownSymbol):
		status = http.StatusBadRequest
	case errors.Is(err, wallet.ErrNotFound),
		errors.Is(err, analysis.ErrNotReady):
		status = http.StatusNotFound
	case errors.Is(err, wallet.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, responder.ErrServiceUnavailable),
		errors.Is(err, wallet.ErrHandshakeFailed),
		errors.Is(err, analysis.ErrGenerationFailed):
		status = http.StatusBadGateway
		retryable = true
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Retryable: retryable})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	return dec.Decode(v)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "quantum-coin",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	msg, err := s.deps.Chat.Send(r.Context(), s.conversation(r), req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]history.Message{"message": msg})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs := s.deps.Chat.History(s.conversation(r))
	if msgs == nil {
		msgs = []history.Message{}
	}
	writeJSON(w, http.StatusOK, map[string][]history.Message{"messages": msgs})
}

func (s *Server) handleChatSuggestions(w http.ResponseWriter, r *http.Request) {
	sugg := s.deps.Chat.Suggestions(s.conversation(r))
	if sugg == nil {
		sugg = []knowledge.Suggestion{}
	}
	writeJSON(w, http.StatusOK, map[string][]knowledge.Suggestion{"suggestions": sugg})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	s.deps.Chat.Reset(s.conversation(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	m := s.wallet(r)
	writeJSON(w, http.StatusOK, toWalletResponse(m.Session()))
}

func (s *Server) handleWalletKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]wallet.KindInfo{"kinds": wallet.Kinds()})
}

func (s *Server) handleWalletConnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	kind, err := wallet.ParseKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if err != nil {
		s.writeError(w, err)
		return
	}
	m := s.wallet(r)
	sess, err := m.RequestConnect(r.Context(), kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(sess))
}

func (s *Server) handleWalletDisconnect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.wallet(r).RequestDisconnect()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(sess))
}

func (s *Server) handleWalletRefresh(w http.ResponseWriter, r *http.Request) {
	sess, err := s.wallet(r).RefreshBalance(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletResponse(sess))
}

func (s *Server) handleLanguageGet(w http.ResponseWriter, r *http.Request) {
	lang := s.wallet(r).Language()
	writeJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (s *Server) handleLanguageSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	lang, err := s.wallet(r).SetLanguage(req.Language)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	rep, err := s.deps.Analyzer.Latest()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleAnalysisNeural toggles neural enhancement and schedules a fresh
// report with the new setting.
func (s *Server) handleAnalysisNeural(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	s.deps.Analyzer.SetNeural(req.Enabled)
	if s.deps.Trigger != nil {
		s.deps.Trigger.RunNow()
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"neural": req.Enabled})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	symbols := wallet.Symbols()
	if raw := r.URL.Query().Get("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}
	quotes, err := s.deps.Prices.Prices(r.Context(), symbols)
	if err != nil {
		if !errors.Is(err, pricefeed.ErrUnknownSymbol) {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Retryable: true})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]pricefeed.Quote{"quotes": quotes})
}
