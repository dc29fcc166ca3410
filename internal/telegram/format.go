package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quantum-coin/internal/history"
	"quantum-coin/internal/knowledge"
	"quantum-coin/internal/responder"
)

func isTransient(err error) bool {
	return errors.Is(err, responder.ErrServiceUnavailable)
}

// suggestionsKeyboard puts one suggestion per row. Callback data carries the
// suggestion index because Telegram limits it to 64 bytes.
func suggestionsKeyboard(list []knowledge.Suggestion) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list))
	for i, s := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Text, suggestPrefix+strconv.Itoa(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func suggestionFromData(data string) (string, bool) {
	if !strings.HasPrefix(data, suggestPrefix) {
		return "", false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(data, suggestPrefix))
	if err != nil {
		return "", false
	}
	list := knowledge.SuggestedQueries()
	if i < 0 || i >= len(list) {
		return "", false
	}
	return list[i].Text, true
}

// formatReply renders the reply text followed by a plain-text version of
// every chart, since Telegram cannot draw them. Text is escaped for the
// given parse mode; an empty mode sends it verbatim.
func formatReply(c history.Content, parseMode string) string {
	esc := func(s string) string {
		if parseMode == "" {
			return s
		}
		return tgbotapi.EscapeText(parseMode, s)
	}
	bold := func(s string) string {
		switch parseMode {
		case tgbotapi.ModeHTML:
			return "<b>" + esc(s) + "</b>"
		case tgbotapi.ModeMarkdown, tgbotapi.ModeMarkdownV2:
			return "*" + esc(s) + "*"
		}
		return s
	}

	var b strings.Builder
	b.WriteString(esc(c.Text))
	for _, ch := range c.Charts {
		b.WriteString("\n\n")
		b.WriteString(bold(ch.Title))
		for _, p := range ch.Data {
			b.WriteString("\n")
			b.WriteString(esc(fmt.Sprintf("%v: %v", p[ch.XAxisKey], p[ch.YAxisKey])))
		}
	}
	return b.String()
}
