package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/responder"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

type stubGenerator struct {
	out   responder.Generation
	err   error
	calls []responder.Query
}

func (g *stubGenerator) Generate(_ context.Context, q responder.Query) (responder.Generation, error) {
	g.calls = append(g.calls, q)
	return g.out, g.err
}

type stubFeed struct{ err error }

func (f stubFeed) Prices(_ context.Context, symbols []string) ([]pricefeed.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []pricefeed.Quote{{Symbol: symbols[0], Price: 1.3, Change24h: 4.2}}, nil
}

func TestGenerate_NeuralConfidence(t *testing.T) {
	gen := &stubGenerator{out: responder.Generation{
		Status:       responder.StatusSuccess,
		NeuralOutput: &responder.NeuralOutput{Confidence: 0.876},
	}}
	a := NewAnalyzer(stubFeed{}, gen, fixedRand{f: 0.6, n: 3}, nil)

	rep, err := a.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 88, rep.Confidence)
	assert.Equal(t, 1.3, rep.Price)
	assert.Equal(t, 4.2, rep.Change24h)
	assert.True(t, rep.Neural)
	assert.Equal(t, marketTrendText, rep.MarketTrend)
	assert.NotEmpty(t, rep.Recommendation)
	assert.InDelta(t, 0.93, rep.Security.ResistanceScore, 1e-9)
	assert.Contains(t, rep.Security.QuantumSafeAlgorithms, "CRYSTALS-Kyber")

	require.Len(t, gen.calls, 1)
	assert.Equal(t, responder.Query{Query: "tokenomics", Neural: true}, gen.calls[0])

	latest, err := a.Latest()
	require.NoError(t, err)
	assert.Equal(t, rep, latest)
}

func TestGenerate_RandomConfidenceWithoutNeuralOutput(t *testing.T) {
	gen := &stubGenerator{out: responder.Generation{Status: responder.StatusSuccess}}
	for n := 0; n < 20; n++ {
		a := NewAnalyzer(nil, gen, fixedRand{n: n}, nil)
		a.SetNeural(false)
		rep, err := a.Generate(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rep.Confidence, 80)
		assert.Less(t, rep.Confidence, 95)
		assert.False(t, rep.Neural)
	}
	assert.False(t, gen.calls[len(gen.calls)-1].Neural)
}

func TestGenerate_FailureKeepsPreviousReport(t *testing.T) {
	gen := &stubGenerator{out: responder.Generation{Status: responder.StatusSuccess}}
	a := NewAnalyzer(stubFeed{}, gen, fixedRand{n: 1}, nil)

	_, err := a.Latest()
	assert.ErrorIs(t, err, ErrNotReady)

	first, err := a.Generate(context.Background())
	require.NoError(t, err)

	gen.err = errors.New("boom")
	_, err = a.Generate(context.Background())
	assert.ErrorIs(t, err, ErrGenerationFailed)

	gen.err = nil
	gen.out = responder.Generation{Status: responder.StatusError, Message: "quota"}
	_, err = a.Generate(context.Background())
	assert.ErrorIs(t, err, ErrGenerationFailed)

	latest, err := a.Latest()
	require.NoError(t, err)
	assert.Equal(t, first, latest)
}

func TestGenerate_PriceFeedFailureIsNotFatal(t *testing.T) {
	a := NewAnalyzer(stubFeed{err: errors.New("offline")}, nil, fixedRand{}, nil)
	rep, err := a.Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Price)
	assert.Equal(t, 80, rep.Confidence)
}

func TestLatest_ReturnsCopy(t *testing.T) {
	a := NewAnalyzer(nil, nil, fixedRand{}, nil)
	_, err := a.Generate(context.Background())
	require.NoError(t, err)

	rep, _ := a.Latest()
	rep.Security.Vulnerabilities[0] = "mutated"

	again, _ := a.Latest()
	assert.NotEqual(t, "mutated", again.Security.Vulnerabilities[0])
}
