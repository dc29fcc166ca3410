package telegram

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"quantum-coin/internal/chat"
	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/responder"
)

type fakeSender struct {
	sent     []tgbotapi.MessageConfig
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type downResponder struct{}

func (downResponder) Respond(context.Context, string) (responder.Reply, error) {
	return responder.Reply{}, responder.ErrServiceUnavailable
}

func newTestBot(r chat.Responder) (*Bot, *fakeSender) {
	if r == nil {
		r = responder.New(knowledge.Default())
	}
	fs := &fakeSender{}
	return &Bot{
		s:         fs,
		chat:      chat.NewService(r, history.NewManager(), nil),
		parseMode: tgbotapi.ModeHTML,
		logger:    zap.NewNop(),
	}, fs
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func commandMessage(chatID int64, cmd string) *tgbotapi.Message {
	m := textMessage(chatID, "/"+cmd)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd) + 1}}
	return m
}

func TestHandleIncomingMessage_AnswersFromKnowledgeBase(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, "What is Quantum Coin?"))

	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fs.sent))
	}
	want := tgbotapi.EscapeText(tgbotapi.ModeHTML, knowledge.Default().At(0).Completion)
	if fs.sent[0].Text != want {
		t.Fatalf("unexpected reply: %q", fs.sent[0].Text)
	}
	if fs.sent[0].ParseMode != tgbotapi.ModeHTML {
		t.Fatalf("parse mode not set: %q", fs.sent[0].ParseMode)
	}
	if got := len(b.chat.History(conversationID(1))); got != 2 {
		t.Fatalf("expected 2 history entries, got %d", got)
	}
}

func TestHandleIncomingMessage_ChartRenderedAsText(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(1, "show me the price chart"))

	out := fs.sent[0].Text
	if !strings.Contains(out, "<b>QNTM price (USD)</b>") || !strings.Contains(out, "Jun: 1.24") {
		t.Fatalf("chart missing: %q", out)
	}
}

func TestHandleIncomingMessage_TransientFailure(t *testing.T) {
	b, fs := newTestBot(downResponder{})
	b.handleIncomingMessage(context.Background(), textMessage(1, "hello"))

	if len(fs.sent) != 1 || fs.sent[0].Text != unavailableText {
		t.Fatalf("expected unavailable notice, got %+v", fs.sent)
	}
}

func TestStartCommand_ShowsSuggestions(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), commandMessage(5, "start"))

	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fs.sent))
	}
	kb, ok := fs.sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected inline keyboard, got %T", fs.sent[0].ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != len(knowledge.SuggestedQueries()) {
		t.Fatalf("expected %d rows, got %d", len(knowledge.SuggestedQueries()), len(kb.InlineKeyboard))
	}
	if kb.InlineKeyboard[0][0].Text != "What is Quantum Coin?" {
		t.Fatalf("unexpected first button: %q", kb.InlineKeyboard[0][0].Text)
	}
}

func TestSuggestionCallback_AsksQuery(t *testing.T) {
	b, fs := newTestBot(nil)
	cb := &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    suggestPrefix + "0",
		Message: textMessage(9, ""),
	}
	b.handleCallback(context.Background(), cb)

	if fs.requests != 1 {
		t.Fatalf("callback not acknowledged")
	}
	h := b.chat.History(conversationID(9))
	if len(h) != 2 || h[0].Content.Text != "What is Quantum Coin?" {
		t.Fatalf("unexpected history: %+v", h)
	}
	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(fs.sent))
	}
}

func TestResetCommandAndCallback(t *testing.T) {
	b, fs := newTestBot(nil)
	b.handleIncomingMessage(context.Background(), textMessage(3, "What is Quantum Coin?"))
	b.handleIncomingMessage(context.Background(), commandMessage(3, "reset"))

	if got := len(b.chat.History(conversationID(3))); got != 0 {
		t.Fatalf("history not cleared: %d", got)
	}
	if fs.sent[len(fs.sent)-1].Text != resetText {
		t.Fatalf("unexpected reset reply: %q", fs.sent[len(fs.sent)-1].Text)
	}

	b.handleIncomingMessage(context.Background(), textMessage(3, "What is Quantum Coin?"))
	b.handleCallback(context.Background(), &tgbotapi.CallbackQuery{ID: "x", Data: resetCmd, Message: textMessage(3, "")})
	if got := len(b.chat.History(conversationID(3))); got != 0 {
		t.Fatalf("history not cleared by button: %d", got)
	}
}

func TestSuggestionFromData(t *testing.T) {
	cases := map[string]bool{
		suggestPrefix + "1":  true,
		suggestPrefix + "99": false,
		suggestPrefix + "x":  false,
		"other":              false,
	}
	for data, want := range cases {
		if _, ok := suggestionFromData(data); ok != want {
			t.Errorf("suggestionFromData(%q) ok=%v, want %v", data, ok, want)
		}
	}
}

func TestFormatReply_EscapesHTML(t *testing.T) {
	out := formatReply(history.Content{Text: "a < b & c"}, tgbotapi.ModeHTML)
	if out != "a &lt; b &amp; c" {
		t.Fatalf("unexpected: %q", out)
	}
	if formatReply(history.Content{Text: "a < b"}, "") != "a < b" {
		t.Fatal("plain mode must not escape")
	}
}

func TestFormatReply_EscapesMarkdownV2(t *testing.T) {
	out := formatReply(history.Content{Text: "QNTM is $1.24 (up 5%)!"}, tgbotapi.ModeMarkdownV2)
	if want := `QNTM is $1\.24 \(up 5%\)\!`; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestHandleIncomingMessage_MarkdownV2Chart(t *testing.T) {
	b, fs := newTestBot(nil)
	b.parseMode = tgbotapi.ModeMarkdownV2
	b.handleIncomingMessage(context.Background(), textMessage(1, "show me the price chart"))

	out := fs.sent[0].Text
	if fs.sent[0].ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Fatalf("parse mode not set: %q", fs.sent[0].ParseMode)
	}
	if !strings.Contains(out, `*QNTM price \(USD\)*`) || !strings.Contains(out, `Jun: 1\.24`) {
		t.Fatalf("chart not escaped: %q", out)
	}
}

func TestHandleIncomingMessage_UnknownParseModeSendsPlain(t *testing.T) {
	b, fs := newTestBot(nil)
	b.parseMode = "markdownv3"
	b.handleIncomingMessage(context.Background(), textMessage(1, "show me the price chart"))

	if fs.sent[0].ParseMode != "" {
		t.Fatalf("unexpected parse mode: %q", fs.sent[0].ParseMode)
	}
	if out := fs.sent[0].Text; !strings.Contains(out, "QNTM price (USD)") || strings.Contains(out, "<b>") {
		t.Fatalf("unexpected plain reply: %q", out)
	}
}
