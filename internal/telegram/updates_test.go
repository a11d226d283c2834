package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"partybot/internal/bot"
)

func message(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: 123},
		Chat:      &tgbotapi.Chat{ID: 456},
		Text:      text,
	}
}

func TestEventFromUpdate(t *testing.T) {
	cmd := message("/start@partybot hello")
	cmd.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 15}}

	shared := message("")
	shared.Contact = &tgbotapi.Contact{PhoneNumber: "380501234567", UserID: 123}

	testCases := []struct {
		name     string
		update   tgbotapi.Update
		expected bot.Event
		ok       bool
	}{
		{
			name:   "command",
			update: tgbotapi.Update{Message: cmd},
			expected: bot.Event{
				Kind: bot.KindCommand, ChatID: 456, UserID: 123, MessageID: 7,
				Command: "start", Args: "hello",
			},
			ok: true,
		},
		{
			name:     "text",
			update:   tgbotapi.Update{Message: message("Olena")},
			expected: bot.Event{Kind: bot.KindText, ChatID: 456, UserID: 123, MessageID: 7, Text: "Olena"},
			ok:       true,
		},
		{
			name:     "contact",
			update:   tgbotapi.Update{Message: shared},
			expected: bot.Event{Kind: bot.KindContact, ChatID: 456, UserID: 123, MessageID: 7, Phone: "380501234567"},
			ok:       true,
		},
		{
			name: "callback",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID:      "cb1",
				From:    &tgbotapi.User{ID: 123},
				Message: message("Привіт!"),
				Data:    "yes",
			}},
			expected: bot.Event{Kind: bot.KindCallback, ChatID: 456, UserID: 123, MessageID: 7, Data: "yes", CallbackID: "cb1"},
			ok:       true,
		},
		{
			name: "callback without message",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID:   "cb2",
				From: &tgbotapi.User{ID: 123},
				Data: "back",
			}},
			expected: bot.Event{Kind: bot.KindCallback, ChatID: 123, UserID: 123, Data: "back", CallbackID: "cb2"},
			ok:       true,
		},
		{
			name:   "sticker",
			update: tgbotapi.Update{Message: message("")},
			ok:     false,
		},
		{
			name:   "channel post",
			update: tgbotapi.Update{ChannelPost: message("news")},
			ok:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := EventFromUpdate(tc.update)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, ev)
			}
		})
	}
}
