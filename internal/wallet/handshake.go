package wallet

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"
)

const handshakeMessage = "QuantumCoin secure connection request"

// Handshaker negotiates a connection with a wallet provider and returns the
// handshake digest.
type Handshaker interface {
	Handshake(ctx context.Context, kind Kind) ([]byte, error)
}

// SimulatedHandshake hashes a fixed message, waits a random delay in
// [MinDelay, MaxDelay] and fails with probability FailRate. It never waits
// past the context deadline.
type SimulatedHandshake struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	FailRate float64
	Rand     Rand
}

func (h *SimulatedHandshake) Handshake(ctx context.Context, kind Kind) ([]byte, error) {
	sum := sha256.Sum256([]byte(handshakeMessage))

	timer := time.NewTimer(h.delay())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrHandshakeFailed, kind, ctx.Err())
	case <-timer.C:
	}

	if h.Rand.Float64() < h.FailRate {
		return nil, fmt.Errorf("%w: %s rejected the connection", ErrHandshakeFailed, kind)
	}
	return sum[:], nil
}

func (h *SimulatedHandshake) delay() time.Duration {
	spread := h.MaxDelay - h.MinDelay
	if spread <= 0 {
		return max(h.MinDelay, 0)
	}
	return h.MinDelay + time.Duration(h.Rand.Float64()*float64(spread))
}
