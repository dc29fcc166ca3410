package responder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quantum-coin/internal/knowledge"
)

// FallbackText is returned when nothing better is available.
const FallbackText = "I'm QuantumBot and I can only answer questions about Quantum Coin: " +
	"its technology, tokenomics, roadmap, team and partners. Try one of the suggested queries."

// Responder turns free text into a reply. It holds no per-call state and is
// safe for concurrent use.
type Responder struct {
	kb        *knowledge.Base
	generator Generator
	templates []template
	logger    *zap.Logger
}

type Option func(*Responder)

// WithGenerator delegates unmatched questions to g.
func WithGenerator(g Generator) Option {
	return func(r *Responder) { r.generator = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Responder) { r.logger = l }
}

func New(kb *knowledge.Base, opts ...Option) *Responder {
	r := &Responder{
		kb:        kb,
		templates: analysisTemplates(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond answers userText. Lookup order is analysis templates, the
// knowledge base, the generator (when configured) and finally FallbackText.
func (r *Responder) Respond(ctx context.Context, userText string) (Reply, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return Reply{}, ErrEmptyInput
	}

	if t, ok := r.matchTemplate(text); ok {
		r.logger.Debug("analysis template matched", zap.String("template", t.name))
		return Reply{Text: t.text, Charts: t.charts(), Source: SourceAnalysis}, nil
	}

	if m, ok := r.kb.Match(text); ok {
		r.logger.Debug("knowledge entry matched",
			zap.Int("index", m.Index), zap.Float64("score", m.Score))
		return Reply{Text: m.Entry.Completion, Source: SourceKnowledge}, nil
	}

	if r.generator == nil {
		return Reply{Text: FallbackText, Source: SourceFallback}, nil
	}

	gen, err := r.generator.Generate(ctx, Query{Query: text})
	if err != nil {
		r.logger.Warn("generation collaborator failed", zap.Error(err))
		return Reply{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if gen.Status != StatusSuccess {
		msg := gen.Message
		if msg == "" {
			msg = "non-success status"
		}
		r.logger.Warn("generation collaborator returned error status", zap.String("message", msg))
		return Reply{}, fmt.Errorf("%w: %s", ErrServiceUnavailable, msg)
	}
	if strings.TrimSpace(gen.Text) == "" {
		return Reply{Text: FallbackText, Source: SourceFallback}, nil
	}
	return Reply{Text: gen.Text, Source: SourceGenerated}, nil
}

func (r *Responder) matchTemplate(text string) (template, bool) {
	lower := strings.ToLower(text)
	for _, t := range r.templates {
		if t.matches(lower) {
			return t, true
		}
	}
	return template{}, false
}
