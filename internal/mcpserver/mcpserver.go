// Package mcpserver exposes QuantumBot as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"quantum-coin/internal/chat"
	"quantum-coin/internal/knowledge"
)

const defaultConversation = "mcp"

// AskParams are the arguments of ask_quantumbot.
type AskParams struct {
	Query        string `json:"query" mcp:"the question to ask QuantumBot"`
	Conversation string `json:"conversation,omitempty" mcp:"conversation id to keep history under (default: mcp)"`
}

type SuggestionsParams struct {
	Limit int `json:"limit,omitempty" mcp:"maximum number of suggestions to return (default: all)"`
}

type Server struct {
	chat   *chat.Service
	logger *zap.Logger
}

func New(svc *chat.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{chat: svc, logger: logger}
}

// Register adds the QuantumBot tools to srv.
func (s *Server) Register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ask_quantumbot",
		Description: "Asks QuantumBot a question about Quantum Coin and returns its answer",
	}, s.Ask)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "suggested_queries",
		Description: "Lists the suggested starter questions for QuantumBot",
	}, s.SuggestedQueries)
}

func (s *Server) Ask(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AskParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	conv := strings.TrimSpace(args.Conversation)
	if conv == "" {
		conv = defaultConversation
	}
	s.logger.Info("mcp ask", zap.String("conversation", conv), zap.String("query", args.Query))

	msg, err := s.chat.Send(ctx, conv, args.Query)
	if err != nil {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("QuantumBot could not answer: %v", err)},
			},
		}, nil
	}

	var b strings.Builder
	b.WriteString(msg.Content.Text)
	for _, ch := range msg.Content.Charts {
		fmt.Fprintf(&b, "\n\n%s (%s chart)", ch.Title, ch.Type)
		for _, p := range ch.Data {
			fmt.Fprintf(&b, "\n- %v: %v", p[ch.XAxisKey], p[ch.YAxisKey])
		}
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
	}, nil
}

func (s *Server) SuggestedQueries(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[SuggestionsParams]) (*mcp.CallToolResultFor[any], error) {
	list := knowledge.SuggestedQueries()
	if n := params.Arguments.Limit; n > 0 && n < len(list) {
		list = list[:n]
	}
	var b strings.Builder
	for i, q := range list {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.TrimRight(b.String(), "\n")}},
	}, nil
}
