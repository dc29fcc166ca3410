package responder

import (
	"context"
	"strings"

	"quantum-coin/internal/llm"
)

const defaultSystemPrompt = "You are QuantumBot, the assistant of the Quantum Coin project. " +
	"Answer briefly and only about Quantum Coin."

// LLMGenerator adapts an llm.Client to the Generator boundary.
type LLMGenerator struct {
	client       llm.Client
	systemPrompt string
}

func NewLLMGenerator(client llm.Client, systemPrompt string) *LLMGenerator {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}
	return &LLMGenerator{client: client, systemPrompt: systemPrompt}
}

// Generate never reports a neural confidence: chat models do not expose one.
func (g *LLMGenerator) Generate(ctx context.Context, q Query) (Generation, error) {
	resp, err := g.client.Generate(ctx, []llm.Message{
		{Role: "system", Content: g.systemPrompt},
		{Role: "user", Content: q.Query},
	})
	if err != nil {
		return Generation{}, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return Generation{Status: StatusError, Message: "empty completion"}, nil
	}
	return Generation{Status: StatusSuccess, Text: resp.Content}, nil
}
