// Package telegram adapts the Telegram Bot API to the bot's gateway and
// event types.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"partybot/internal/bot"
)

// API is the part of tgbotapi.BotAPI the gateway uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Gateway sends bot output through the Telegram Bot API
type Gateway struct {
	api API
}

// NewGateway wraps api
func NewGateway(api API) *Gateway {
	return &Gateway{api: api}
}

// Send delivers msg and returns the Telegram message id
func (g *Gateway) Send(ctx context.Context, msg bot.OutboundMessage) (int, error) {
	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	switch {
	case len(msg.Inline) > 0:
		out.ReplyMarkup = inlineMarkup(msg.Inline)
	case msg.RemoveKeyboard:
		out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	case msg.Reply != nil:
		out.ReplyMarkup = replyMarkup(msg.Reply)
	}

	sent, err := g.api.Send(out)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

// Edit replaces the text and inline keyboard of a message
func (g *Gateway) Edit(ctx context.Context, chatID int64, messageID int, text string, kb bot.InlineKeyboard) error {
	var edit tgbotapi.Chattable
	if len(kb) > 0 {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineMarkup(kb))
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}

	if _, err := g.api.Request(edit); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Delete removes a message
func (g *Gateway) Delete(ctx context.Context, chatID int64, messageID int) error {
	if _, err := g.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a button press
func (g *Gateway) AnswerCallback(ctx context.Context, callbackID string) error {
	if callbackID == "" {
		return nil
	}
	if _, err := g.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

func inlineMarkup(kb bot.InlineKeyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func replyMarkup(kb *bot.ReplyKeyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			if b.RequestContact {
				buttons = append(buttons, tgbotapi.NewKeyboardButtonContact(b.Text))
				continue
			}
			buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Text))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = kb.Resize
	return markup
}

var _ bot.Gateway = (*Gateway)(nil)
