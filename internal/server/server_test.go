package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantum-coin/internal/analysis"
	"quantum-coin/internal/chat"
	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/responder"
	"quantum-coin/internal/storage"
	"quantum-coin/internal/wallet"
)

type instantHandshake struct{ err error }

func (h instantHandshake) Handshake(context.Context, wallet.Kind) ([]byte, error) {
	return []byte{0x01}, h.err
}

type failingResponder struct{}

func (failingResponder) Respond(context.Context, string) (responder.Reply, error) {
	return responder.Reply{}, responder.ErrServiceUnavailable
}

type countingTrigger struct{ n atomic.Int32 }

func (c *countingTrigger) RunNow() { c.n.Add(1) }

type fixture struct {
	srv      *Server
	handler  http.Handler
	store    storage.Store
	analyzer *analysis.Analyzer
	trigger  *countingTrigger
}

func newFixture(t *testing.T, r chat.Responder, hs wallet.Handshaker) *fixture {
	t.Helper()
	return newFixtureTTL(t, r, hs, time.Minute)
}

func newFixtureTTL(t *testing.T, r chat.Responder, hs wallet.Handshaker, idleTTL time.Duration) *fixture {
	t.Helper()
	if r == nil {
		r = responder.New(knowledge.Default())
	}
	store := storage.NewMemStore()
	rnd := wallet.NewRand(1)
	f := &fixture{
		store:    store,
		analyzer: analysis.NewAnalyzer(pricefeed.NewSimulated(rnd), nil, rnd, nil),
		trigger:  &countingTrigger{},
	}
	f.srv = New(":0", idleTTL, Deps{
		Chat:          chat.NewService(r, history.NewManager(), nil),
		Analyzer:      f.analyzer,
		Trigger:       f.trigger,
		Prices:        pricefeed.NewSimulated(rnd),
		Store:         store,
		WalletOptions: []wallet.Option{wallet.WithHandshaker(hs), wallet.WithRand(rnd)},
	})
	f.handler = f.srv.Handler()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = f.srv.Stop(ctx)
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, client string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if client != "" {
		req.Header.Set(clientHeader, client)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestStatus(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})
	rr := f.do(t, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]any](t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "quantum-coin", body["service"])
}

func TestChat_SendHistoryReset(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})

	rr := f.do(t, http.MethodGet, "/api/chat/suggestions", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	sugg := decode[map[string][]knowledge.Suggestion](t, rr)
	assert.Equal(t, "What is Quantum Coin?", sugg["suggestions"][0].Text)

	rr = f.do(t, http.MethodPost, "/api/chat", "alice", map[string]string{"message": "What is Quantum Coin?"})
	require.Equal(t, http.StatusOK, rr.Code)
	sent := decode[map[string]history.Message](t, rr)
	assert.Equal(t, history.RoleAssistant, sent["message"].Role)
	assert.Equal(t, knowledge.Default().At(0).Completion, sent["message"].Content.Text)

	rr = f.do(t, http.MethodGet, "/api/chat/history", "alice", nil)
	assert.Len(t, decode[map[string][]history.Message](t, rr)["messages"], 2)

	rr = f.do(t, http.MethodGet, "/api/chat/history", "bob", nil)
	assert.Empty(t, decode[map[string][]history.Message](t, rr)["messages"])

	rr = f.do(t, http.MethodPost, "/api/chat/reset", "alice", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = f.do(t, http.MethodGet, "/api/chat/history", "alice", nil)
	assert.Empty(t, decode[map[string][]history.Message](t, rr)["messages"])
}

func TestChat_Errors(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})
	rr := f.do(t, http.MethodPost, "/api/chat", "", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/chat", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	down := newFixture(t, failingResponder{}, instantHandshake{})
	rr = down.do(t, http.MethodPost, "/api/chat", "", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.True(t, decode[errorResponse](t, rr).Retryable)
}

func TestWallet_Lifecycle(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})

	rr := f.do(t, http.MethodGet, "/api/wallet", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, wallet.StatusDisconnected, decode[walletResponse](t, rr).Status)

	rr = f.do(t, http.MethodPost, "/api/wallet/connect", "alice", map[string]string{"kind": "MetaMask"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	w := decode[walletResponse](t, rr)
	assert.Equal(t, wallet.StatusConnected, w.Status)
	assert.Equal(t, wallet.KindMetaMask, w.Kind)
	require.NotNil(t, w.Address)
	assert.Equal(t, "25000.00", w.Balances["QNTM"])
	assert.Equal(t, "1.2345", w.Balances["ETH"])
	assert.Len(t, w.Transactions, 3)

	saved, ok, err := storage.NewNamespaced(f.store, "alice").Get(storage.KeyWalletType)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "metamask", saved)

	rr = f.do(t, http.MethodPost, "/api/wallet/connect", "alice", map[string]string{"kind": "phantom"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/wallet/refresh", "alice", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/wallet/disconnect", "alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	w = decode[walletResponse](t, rr)
	assert.Equal(t, wallet.StatusDisconnected, w.Status)
	assert.Nil(t, w.Address)

	rr = f.do(t, http.MethodPost, "/api/wallet/disconnect", "alice", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	rr = f.do(t, http.MethodPost, "/api/wallet/refresh", "alice", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestWallet_ConnectErrors(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{err: errors.New("rejected")})

	rr := f.do(t, http.MethodPost, "/api/wallet/connect", "", map[string]string{"kind": "ledger"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/wallet/connect", "", map[string]string{"kind": "trust"})
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.True(t, decode[errorResponse](t, rr).Retryable)

	rr = f.do(t, http.MethodGet, "/api/wallet", "", nil)
	w := decode[walletResponse](t, rr)
	assert.Equal(t, wallet.StatusDisconnected, w.Status)
	assert.Equal(t, "Could not connect to Trust Wallet. Please try again.", w.LastError)
}

func TestWallet_SilentReconnectPerClient(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})
	require.NoError(t, storage.NewNamespaced(f.store, "alice").Set(storage.KeyWalletType, "phantom"))

	rr := f.do(t, http.MethodGet, "/api/wallet", "alice", nil)
	w := decode[walletResponse](t, rr)
	assert.Equal(t, wallet.StatusConnected, w.Status)
	assert.Equal(t, wallet.KindPhantom, w.Kind)

	rr = f.do(t, http.MethodGet, "/api/wallet", "bob", nil)
	assert.Equal(t, wallet.StatusDisconnected, decode[walletResponse](t, rr).Status)
}

func TestWallet_Kinds(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})
	rr := f.do(t, http.MethodGet, "/api/wallet/kinds", "", nil)
	kinds := decode[map[string][]wallet.KindInfo](t, rr)["kinds"]
	require.Len(t, kinds, 4)
	assert.Equal(t, wallet.KindMetaMask, kinds[0].ID)
}

func TestLanguage(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})

	rr := f.do(t, http.MethodGet, "/api/language", "alice", nil)
	assert.Equal(t, "en", decode[map[string]string](t, rr)["language"])

	rr = f.do(t, http.MethodPost, "/api/language", "alice", map[string]string{"language": "pt-br"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pt-BR", decode[map[string]string](t, rr)["language"])

	rr = f.do(t, http.MethodPost, "/api/language", "alice", map[string]string{"language": "!!"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodGet, "/api/language", "alice", nil)
	assert.Equal(t, "pt-BR", decode[map[string]string](t, rr)["language"])

	saved, _, _ := storage.NewNamespaced(f.store, "alice").Get(storage.KeyLanguage)
	assert.Equal(t, "pt-BR", saved)
}

func TestAnalysis(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})

	rr := f.do(t, http.MethodGet, "/api/analysis", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	_, err := f.analyzer.Generate(context.Background())
	require.NoError(t, err)

	rr = f.do(t, http.MethodGet, "/api/analysis", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rep := decode[analysis.Report](t, rr)
	assert.True(t, rep.Neural)
	assert.NotEmpty(t, rep.MarketTrend)

	rr = f.do(t, http.MethodPost, "/api/analysis/neural", "", map[string]bool{"enabled": false})
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.False(t, f.analyzer.Neural())
	assert.EqualValues(t, 1, f.trigger.n.Load())
}

func TestPrices(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})

	rr := f.do(t, http.MethodGet, "/api/prices", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	quotes := decode[map[string][]pricefeed.Quote](t, rr)["quotes"]
	require.Len(t, quotes, len(wallet.Symbols()))
	assert.Equal(t, "QNTM", quotes[0].Symbol)

	rr = f.do(t, http.MethodGet, "/api/prices?symbols=btc,eth", "", nil)
	quotes = decode[map[string][]pricefeed.Quote](t, rr)["quotes"]
	require.Len(t, quotes, 2)
	assert.Equal(t, "BTC", quotes[0].Symbol)

	rr = f.do(t, http.MethodGet, "/api/prices?symbols=DOGE", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownMethod(t *testing.T) {
	f := newFixture(t, nil, instantHandshake{})
	rr := f.do(t, http.MethodDelete, "/api/wallet", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestChat_IdleClientConversationDropped(t *testing.T) {
	f := newFixtureTTL(t, nil, instantHandshake{}, 20*time.Millisecond)

	rr := f.do(t, http.MethodPost, "/api/chat", "alice", map[string]string{"message": "What is Quantum Coin?"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.srv.deps.Chat.History("alice"), 2)

	// The janitor evicts the idle client without any further request.
	require.Eventually(t, func() bool {
		return len(f.srv.deps.Chat.History("alice")) == 0
	}, time.Second, 10*time.Millisecond)
	assert.Zero(t, f.srv.clients.ItemCount())

	rr = f.do(t, http.MethodGet, "/api/chat/history", "alice", nil)
	assert.Empty(t, decode[map[string][]history.Message](t, rr)["messages"])
}

func TestChat_ActiveClientKeepsConversation(t *testing.T) {
	f := newFixtureTTL(t, nil, instantHandshake{}, 200*time.Millisecond)

	rr := f.do(t, http.MethodPost, "/api/chat", "alice", map[string]string{"message": "What is Quantum Coin?"})
	require.Equal(t, http.StatusOK, rr.Code)
	for range 5 {
		time.Sleep(50 * time.Millisecond)
		rr = f.do(t, http.MethodGet, "/api/chat/history", "alice", nil)
		require.Len(t, decode[map[string][]history.Message](t, rr)["messages"], 2)
	}
}

func TestStop_BeforeStart(t *testing.T) {
	srv := New("127.0.0.1:0", time.Minute, Deps{})
	require.NoError(t, srv.Stop(context.Background()))
	// A stopped server refuses to serve instead of listening forever.
	assert.NoError(t, srv.Start())
}
