// Package chat wires the responder to conversation history.
package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/responder"
)

// ErrEmptyMessage is returned for blank input; the responder is not called.
var ErrEmptyMessage = errors.New("chat: message is empty")

// suggestionLimit is the conversation length below which suggestions show.
const suggestionLimit = 3

type Responder interface {
	Respond(ctx context.Context, userText string) (responder.Reply, error)
}

type Service struct {
	responder Responder
	history   *history.Manager
	logger    *zap.Logger
}

func NewService(r Responder, h *history.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{responder: r, history: h, logger: logger}
}

// Send records the user's message, asks the responder and records the
// reply. On a responder error the user's message stays in the log and the
// error is returned for the caller to show as a transient notice.
func (s *Service) Send(ctx context.Context, conv, text string) (history.Message, error) {
	if strings.TrimSpace(text) == "" {
		return history.Message{}, ErrEmptyMessage
	}

	s.history.AppendUser(conv, text)

	reply, err := s.responder.Respond(ctx, text)
	if err != nil {
		s.logger.Warn("responder failed", zap.String("conversation", conv), zap.Error(err))
		return history.Message{}, err
	}

	msg := s.history.AppendAssistant(conv, history.Content{Text: reply.Text, Charts: reply.Charts})
	s.logger.Debug("assistant replied",
		zap.String("conversation", conv),
		zap.String("source", string(reply.Source)),
		zap.Int("charts", len(reply.Charts)))
	return msg, nil
}

func (s *Service) History(conv string) []history.Message {
	return s.history.Get(conv)
}

func (s *Service) Reset(conv string) {
	s.history.Reset(conv)
}

// Suggestions returns the suggested queries while the conversation is
// still short, and nil afterwards.
func (s *Service) Suggestions(conv string) []knowledge.Suggestion {
	if s.history.Len(conv) >= suggestionLimit {
		return nil
	}
	return knowledge.SuggestedQueries()
}
