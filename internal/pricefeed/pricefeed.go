// Package pricefeed provides read-only token quotes for the dashboards.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrUnknownSymbol = errors.New("pricefeed: unknown symbol")

type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

// Feed returns quotes in the order the symbols were requested.
type Feed interface {
	Prices(ctx context.Context, symbols []string) ([]Quote, error)
}

type Rand interface {
	Float64() float64
}

var basePrices = map[string]float64{
	"QNTM": 1.24,
	"ETH":  3150.00,
	"BTC":  64250.00,
	"SOL":  142.50,
	"USDT": 1.00,
}

// Simulated is a random-walk feed around fixed base prices. Each call moves
// a price by at most 1% and reports the change against the base price.
type Simulated struct {
	mu     sync.Mutex
	rand   Rand
	prices map[string]float64
}

func NewSimulated(r Rand) *Simulated {
	prices := make(map[string]float64, len(basePrices))
	for k, v := range basePrices {
		prices[k] = v
	}
	return &Simulated{rand: r, prices: prices}
}

func (s *Simulated) Prices(ctx context.Context, symbols []string) ([]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Quote, 0, len(symbols))
	for _, raw := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		base, ok := basePrices[sym]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, raw)
		}
		step := (s.rand.Float64()*2 - 1) * 0.01
		price := s.prices[sym] * (1 + step)
		s.prices[sym] = price
		out = append(out, Quote{
			Symbol:    sym,
			Price:     round(price, 4),
			Change24h: round((price-base)/base*100, 2),
		})
	}
	return out, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Cached serves repeated symbol lookups from an in-memory TTL cache.
type Cached struct {
	feed  Feed
	cache *cache.Cache
}

func NewCached(feed Feed, ttl time.Duration) *Cached {
	return &Cached{feed: feed, cache: cache.New(ttl, 2*ttl)}
}

func (c *Cached) Prices(ctx context.Context, symbols []string) ([]Quote, error) {
	out := make([]Quote, len(symbols))
	var missing []string
	var missingIdx []int
	for i, raw := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		if v, ok := c.cache.Get(sym); ok {
			out[i] = v.(Quote)
			continue
		}
		missing = append(missing, sym)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.feed.Prices(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, fmt.Errorf("pricefeed: asked for %d quotes, got %d", len(missing), len(fresh))
	}
	for j, q := range fresh {
		c.cache.SetDefault(q.Symbol, q)
		out[missingIdx[j]] = q
	}
	return out, nil
}
