// Package wallet simulates a browser wallet connection: one session per
// Manager, a fake handshake, synthetic balances and transactions, and the
// last used wallet kind remembered in a durable key-value store.
package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"quantum-coin/internal/storage"
)

const (
	DefaultLanguage         = "en"
	DefaultHandshakeTimeout = 5 * time.Second
)

// Manager owns one wallet session. While a connect is in flight the session
// stays connecting and every other transition fails fast with
// ErrInvalidTransition instead of waiting for it.
type Manager struct {
	mu         sync.Mutex
	store      storage.Store
	handshaker Handshaker
	rand       Rand
	logger     *zap.Logger
	now        func() time.Time
	timeout    time.Duration

	session      Session
	lastBalances map[string]decimal.Decimal
	language     string
}

type Option func(*Manager)

func WithHandshaker(h Handshaker) Option { return func(m *Manager) { m.handshaker = h } }
func WithRand(r Rand) Option             { return func(m *Manager) { m.rand = r } }
func WithLogger(l *zap.Logger) Option    { return func(m *Manager) { m.logger = l } }
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithHandshakeTimeout bounds every handshake.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// NewManager creates a disconnected session backed by store. The saved
// language preference, if any, is loaded immediately.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		logger:   zap.NewNop(),
		now:      time.Now,
		timeout:  DefaultHandshakeTimeout,
		session:  Session{Status: StatusDisconnected},
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = NewRand(0)
	}
	if m.handshaker == nil {
		m.handshaker = &SimulatedHandshake{
			MinDelay: 300 * time.Millisecond,
			MaxDelay: 1500 * time.Millisecond,
			FailRate: 0.2,
			Rand:     m.rand,
		}
	}
	if lang, ok, err := store.Get(storage.KeyLanguage); err != nil {
		m.logger.Warn("failed to read language preference", zap.Error(err))
	} else if ok {
		if tag, err := language.Parse(lang); err == nil {
			m.language = tag.String()
		}
	}
	return m
}

// Session returns a copy of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.clone()
}

// RequestConnect runs the handshake for kind. It is valid only while
// disconnected. On failure the session returns to disconnected with
// LastError set and the durable store is left untouched.
func (m *Manager) RequestConnect(ctx context.Context, kind Kind) (Session, error) {
	info, ok := kind.Info()
	if !ok {
		return m.Session(), fmt.Errorf("%w: %q", ErrUnsupported, kind)
	}

	m.mu.Lock()
	if m.session.Status != StatusDisconnected {
		st := m.session.Status
		m.mu.Unlock()
		return m.Session(), fmt.Errorf("%w: connect while %s", ErrInvalidTransition, st)
	}
	m.session = Session{Kind: kind, Status: StatusConnecting}
	m.mu.Unlock()

	m.logger.Info("connecting wallet", zap.String("kind", string(kind)))

	hsCtx, cancel := context.WithTimeout(ctx, m.timeout)
	digest, err := m.handshaker.Handshake(hsCtx, kind)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.session = Session{
			Status:    StatusDisconnected,
			LastError: fmt.Sprintf("Could not connect to %s. Please try again.", info.Name),
		}
		m.logger.Warn("wallet handshake failed", zap.String("kind", string(kind)), zap.Error(err))
		if !errors.Is(err, ErrHandshakeFailed) {
			err = fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
		}
		return m.session.clone(), err
	}

	balances := cloneBalances(m.lastBalances)
	if len(balances) == 0 {
		balances = defaultBalances()
	}
	addr := m.newAddress()
	m.session = Session{
		Kind:         kind,
		Address:      &addr,
		Status:       StatusConnected,
		Balances:     balances,
		Transactions: m.syntheticTransactions(),
	}

	if err := m.store.Set(storage.KeyWalletType, string(kind)); err != nil {
		m.logger.Warn("failed to persist wallet kind", zap.Error(err))
	}

	m.logger.Info("wallet connected",
		zap.String("kind", string(kind)),
		zap.String("address", addr),
		zap.String("digest", hex.EncodeToString(digest)))
	return m.session.clone(), nil
}

// RequestDisconnect clears the session and forgets the saved wallet kind.
func (m *Manager) RequestDisconnect() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Status != StatusConnected {
		return m.session.clone(), fmt.Errorf("%w: disconnect while %s", ErrInvalidTransition, m.session.Status)
	}

	kind := m.session.Kind
	m.lastBalances = cloneBalances(m.session.Balances)
	m.session = Session{Status: StatusDisconnected}

	if err := m.store.Remove(storage.KeyWalletType); err != nil {
		m.logger.Warn("failed to remove saved wallet kind", zap.Error(err))
	}
	m.logger.Info("wallet disconnected", zap.String("kind", string(kind)))
	return m.session.clone(), nil
}

// RefreshBalance re-derives the balances of a connected session.
func (m *Manager) RefreshBalance(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return m.Session(), err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Status != StatusConnected {
		return m.session.clone(), fmt.Errorf("%w: refresh while %s", ErrInvalidTransition, m.session.Status)
	}
	m.session.Balances = perturb(m.session.Balances, m.rand)
	m.logger.Debug("wallet balance refreshed", zap.String("kind", string(m.session.Kind)))
	return m.session.clone(), nil
}

// AttemptSilentReconnect reconnects to the saved wallet kind without user
// interaction. ErrNotFound means nothing was saved. A failed attempt
// clears the saved kind so later starts do not retry it.
func (m *Manager) AttemptSilentReconnect(ctx context.Context) (Session, error) {
	saved, ok, err := m.store.Get(storage.KeyWalletType)
	if err != nil {
		return m.Session(), fmt.Errorf("read saved wallet: %w", err)
	}
	if !ok || strings.TrimSpace(saved) == "" {
		return m.Session(), ErrNotFound
	}

	kind, err := ParseKind(saved)
	if err != nil {
		m.forgetSaved()
		return m.Session(), err
	}

	m.logger.Info("attempting silent reconnect", zap.String("kind", saved))
	s, err := m.RequestConnect(ctx, kind)
	if err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			m.forgetSaved()
		}
		return s, err
	}
	return s, nil
}

func (m *Manager) forgetSaved() {
	if err := m.store.Remove(storage.KeyWalletType); err != nil {
		m.logger.Warn("failed to remove saved wallet kind", zap.Error(err))
	}
}

func (m *Manager) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.language
}

// SetLanguage stores a BCP 47 language code in canonical form.
func (m *Manager) SetLanguage(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	canonical := tag.String()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(storage.KeyLanguage, canonical); err != nil {
		return "", fmt.Errorf("persist language: %w", err)
	}
	m.language = canonical
	return canonical, nil
}

func (m *Manager) newAddress() string {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(m.rand.IntN(256))
	}
	return "0x" + hex.EncodeToString(b)
}

func (m *Manager) syntheticTransactions() []Transaction {
	now := m.now()
	return []Transaction{
		{
			ID:                  uuid.NewString(),
			Direction:           DirectionReceived,
			Amount:              decimal.NewFromInt(25),
			Timestamp:           now.Add(-time.Hour),
			USDValue:            decimal.NewFromInt(31),
			CounterpartyAddress: "0x123...456",
			Status:              TxCompleted,
		},
		{
			ID:                  uuid.NewString(),
			Direction:           DirectionSent,
			Amount:              decimal.NewFromInt(10),
			Timestamp:           now.Add(-24 * time.Hour),
			USDValue:            decimal.RequireFromString("12.4"),
			CounterpartyAddress: "0x789...012",
			Status:              TxCompleted,
		},
		{
			ID:                  uuid.NewString(),
			Direction:           DirectionSent,
			Amount:              decimal.NewFromInt(5),
			Timestamp:           now.Add(-48 * time.Hour),
			USDValue:            decimal.RequireFromString("6.2"),
			CounterpartyAddress: "0xabc...def",
			Status:              TxCompleted,
		},
	}
}
