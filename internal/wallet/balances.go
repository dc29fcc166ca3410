package wallet

import (
	"github.com/shopspring/decimal"
)

type tokenDef struct {
	symbol string
	start  string
	jitter float64
	places int32
}

// tokens lists the displayed balances, their starting amounts, the maximum
// refresh perturbation and the display precision.
var tokens = []tokenDef{
	{symbol: "QNTM", start: "25000.00", jitter: 5, places: 2},
	{symbol: "ETH", start: "1.2345", jitter: 0.025, places: 4},
	{symbol: "BTC", start: "0.0821", jitter: 0.0025, places: 4},
	{symbol: "SOL", start: "45.678", jitter: 0.25, places: 3},
	{symbol: "USDT", start: "5000.00", jitter: 5, places: 2},
}

// Symbols returns the token symbols in display order.
func Symbols() []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.symbol)
	}
	return out
}

func defaultBalances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(tokens))
	for _, t := range tokens {
		out[t.symbol] = decimal.RequireFromString(t.start)
	}
	return out
}

// perturb moves every balance by a uniform delta in [-jitter, +jitter),
// rounds to the token's precision and never goes below zero.
func perturb(cur map[string]decimal.Decimal, r Rand) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(cur))
	for _, t := range tokens {
		v, ok := cur[t.symbol]
		if !ok {
			v = decimal.RequireFromString(t.start)
		}
		delta := decimal.NewFromFloat((r.Float64()*2 - 1) * t.jitter)
		next := v.Add(delta).Round(t.places)
		if next.IsNegative() {
			next = decimal.Zero
		}
		out[t.symbol] = next
	}
	return out
}

// FormatBalances renders balances with each token's fixed precision.
func FormatBalances(b map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(b))
	for sym, v := range b {
		places := int32(2)
		for _, t := range tokens {
			if t.symbol == sym {
				places = t.places
				break
			}
		}
		out[sym] = v.StringFixed(places)
	}
	return out
}

func cloneBalances(b map[string]decimal.Decimal) map[string]decimal.Decimal {
	if b == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
