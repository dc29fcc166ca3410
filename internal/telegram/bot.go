// Package telegram serves QuantumBot conversations over Telegram.
package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"quantum-coin/internal/chat"
	"quantum-coin/internal/knowledge"
)

const (
	resetCmd      = "reset_ctx"
	suggestPrefix = "suggest:"
)

const (
	welcomeText     = "Hi! I'm QuantumBot. Ask me anything about Quantum Coin or pick a question below."
	resetText       = "Conversation cleared."
	unavailableText = "QuantumBot is temporarily unavailable. Please try again in a moment."
	failureText     = "Sorry, something went wrong."
	helpText        = "/start - welcome and suggested questions\n/suggest - suggested questions\n/reset - clear the conversation"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	chat      *chat.Service
	parseMode string
	logger    *zap.Logger
}

func New(botToken string, svc *chat.Service, parseMode string, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		chat:      svc,
		parseMode: parseMode,
		logger:    logger,
	}, nil
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func conversationID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	b.logger.Debug("incoming message", zap.Int64("chat", msg.Chat.ID), zap.String("text", msg.Text))
	b.ask(ctx, msg.Chat.ID, msg.Text)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		list := b.chat.Suggestions(conversationID(chatID))
		if len(list) == 0 {
			b.sendMessage(chatID, welcomeText)
			return
		}
		b.sendWithKeyboard(chatID, welcomeText, suggestionsKeyboard(list))
	case "suggest":
		b.sendWithKeyboard(chatID, "Try one of these:", suggestionsKeyboard(knowledge.SuggestedQueries()))
	case "reset":
		b.chat.Reset(conversationID(chatID))
		b.sendMessage(chatID, resetText)
	default:
		b.sendMessage(chatID, helpText)
	}
}

// ask runs one conversation turn and sends the reply.
func (b *Bot) ask(ctx context.Context, chatID int64, text string) {
	reply, err := b.chat.Send(ctx, conversationID(chatID), text)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return
	case err != nil:
		b.logger.Warn("chat failed", zap.Int64("chat", chatID), zap.Error(err))
		if isTransient(err) {
			b.sendMessage(chatID, unavailableText)
		} else {
			b.sendMessage(chatID, failureText)
		}
		return
	}

	out := tgbotapi.NewMessage(chatID, formatReply(reply.Content, b.parseModeValue()))
	out.ParseMode = b.parseModeValue()
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Reset conversation", resetCmd),
		),
	)
	if _, err := b.s.Send(out); err != nil {
		b.logger.Warn("failed to send reply", zap.Error(err))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch {
	case cb.Data == resetCmd:
		b.chat.Reset(conversationID(chatID))
		b.sendMessage(chatID, resetText)
	default:
		if q, ok := suggestionFromData(cb.Data); ok {
			b.ask(ctx, chatID, q)
		}
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) parseModeValue() string {
	switch b.parseMode {
	case tgbotapi.ModeHTML, tgbotapi.ModeMarkdown, tgbotapi.ModeMarkdownV2:
		return b.parseMode
	}
	return ""
}
