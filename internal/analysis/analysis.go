// Package analysis builds the periodic market and security report shown on
// the dashboard.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"quantum-coin/internal/pricefeed"
	"quantum-coin/internal/responder"
)

var (
	ErrGenerationFailed = errors.New("analysis: generation failed")
	// ErrNotReady is returned by Latest before the first successful run.
	ErrNotReady = errors.New("analysis: no report yet")
)

const (
	symbol          = "QNTM"
	generationQuery = "tokenomics"
)

const (
	marketTrendText = "The current market shows strong accumulation patterns with increasing volume. " +
		"Institutional interest in Quantum coin has grown by 23% in Q1 2025. " +
		"Quantum computing advancements have attracted significant attention to the project."
	tokenPredictionText = "Based on technical analysis and network growth metrics, Quantum coin is projected " +
		"to appreciate by 140-180% over the next 6 months, with potential for higher gains if quantum " +
		"computing adoption accelerates as predicted."
	riskAssessmentText = "Medium risk profile. Volatility remains high compared to established cryptocurrencies, " +
		"but strong fundamentals and growing adoption provide solid support levels. " +
		"The educational foundation provides additional stability."
	recommendationText = "Strategic accumulation advised. Dollar-cost averaging and maintaining 5-10% of crypto " +
		"portfolio allocation to Quantum coin offers optimal risk-reward ratio. Consider staking for additional returns."
)

var quantumSafeAlgorithms = []string{"CRYSTALS-Kyber", "CRYSTALS-Dilithium", "FALCON", "SPHINCS+"}

var knownVulnerabilities = []string{
	"Legacy ECDSA addresses remain exposed until migrated",
	"Bridge contracts rely on classical signatures",
}

type Security struct {
	ResistanceScore       float64  `json:"resistanceScore"`
	QuantumSafeAlgorithms []string `json:"quantumSafeAlgorithms"`
	Vulnerabilities       []string `json:"vulnerabilities"`
}

type Report struct {
	Price           float64   `json:"price"`
	Change24h       float64   `json:"change24h"`
	MarketTrend     string    `json:"marketTrend"`
	TokenPrediction string    `json:"tokenPrediction"`
	RiskAssessment  string    `json:"riskAssessment"`
	Recommendation  string    `json:"recommendation"`
	Confidence      int       `json:"confidence"`
	Neural          bool      `json:"neural"`
	Security        Security  `json:"security"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Rand interface {
	Float64() float64
	IntN(n int) int
}

type Analyzer struct {
	feed   pricefeed.Feed
	gen    responder.Generator
	rand   Rand
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	neural bool
	latest *Report
}

func NewAnalyzer(feed pricefeed.Feed, gen responder.Generator, r Rand, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{feed: feed, gen: gen, rand: r, logger: logger, now: time.Now, neural: true}
}

func (a *Analyzer) SetNeural(on bool) {
	a.mu.Lock()
	a.neural = on
	a.mu.Unlock()
}

func (a *Analyzer) Neural() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.neural
}

// Latest returns the last successful report.
func (a *Analyzer) Latest() (Report, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.latest == nil {
		return Report{}, ErrNotReady
	}
	return a.latest.clone(), nil
}

// Generate produces a new report and makes it the latest one. On failure the
// previous report is left in place.
func (a *Analyzer) Generate(ctx context.Context) (Report, error) {
	neural := a.Neural()

	var rep Report
	if a.feed != nil {
		quotes, err := a.feed.Prices(ctx, []string{symbol})
		if err != nil {
			// Price is informational only.
			a.logger.Warn("price feed failed", zap.Error(err))
		} else if len(quotes) > 0 {
			rep.Price = quotes[0].Price
			rep.Change24h = quotes[0].Change24h
		}
	}

	var out responder.Generation
	if a.gen != nil {
		var err error
		out, err = a.gen.Generate(ctx, responder.Query{Query: generationQuery, Neural: neural})
		if err != nil {
			return Report{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		if out.Status != responder.StatusSuccess {
			return Report{}, fmt.Errorf("%w: %s", ErrGenerationFailed, out.Message)
		}
	}

	rep.MarketTrend = marketTrendText
	rep.TokenPrediction = tokenPredictionText
	rep.RiskAssessment = riskAssessmentText
	rep.Recommendation = recommendationText
	rep.Neural = neural
	if out.NeuralOutput != nil {
		rep.Confidence = int(math.Round(out.NeuralOutput.Confidence * 100))
	} else {
		rep.Confidence = 80 + a.rand.IntN(15)
	}
	rep.Security = a.security()
	rep.UpdatedAt = a.now()

	a.mu.Lock()
	a.latest = &rep
	a.mu.Unlock()

	a.logger.Info("analysis generated",
		zap.Int("confidence", rep.Confidence),
		zap.Bool("neural", neural),
		zap.Float64("price", rep.Price))
	return rep.clone(), nil
}

func (a *Analyzer) security() Security {
	score := 0.85 + a.rand.Float64()*0.13
	return Security{
		ResistanceScore:       math.Round(score*100) / 100,
		QuantumSafeAlgorithms: append([]string(nil), quantumSafeAlgorithms...),
		Vulnerabilities:       append([]string(nil), knownVulnerabilities...),
	}
}

func (r Report) clone() Report {
	r.Security.QuantumSafeAlgorithms = append([]string(nil), r.Security.QuantumSafeAlgorithms...)
	r.Security.Vulnerabilities = append([]string(nil), r.Security.Vulnerabilities...)
	return r
}
