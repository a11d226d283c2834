package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"partybot/internal/bot"
)

// EventFromUpdate translates an update into a bot event. Updates the bot
// does not handle yield false.
func EventFromUpdate(update tgbotapi.Update) (bot.Event, bool) {
	if q := update.CallbackQuery; q != nil {
		if q.From == nil {
			return bot.Event{}, false
		}
		ev := bot.Event{
			Kind:       bot.KindCallback,
			ChatID:     q.From.ID,
			UserID:     q.From.ID,
			Data:       q.Data,
			CallbackID: q.ID,
		}
		if q.Message != nil {
			ev.MessageID = q.Message.MessageID
			if q.Message.Chat != nil {
				ev.ChatID = q.Message.Chat.ID
			}
		}
		return ev, true
	}

	m := update.Message
	if m == nil || m.Chat == nil || m.From == nil {
		return bot.Event{}, false
	}

	ev := bot.Event{
		ChatID:    m.Chat.ID,
		UserID:    m.From.ID,
		MessageID: m.MessageID,
	}
	switch {
	case m.IsCommand():
		ev.Kind = bot.KindCommand
		ev.Command = m.Command()
		ev.Args = m.CommandArguments()
	case m.Contact != nil:
		ev.Kind = bot.KindContact
		ev.Phone = m.Contact.PhoneNumber
	case m.Text != "":
		ev.Kind = bot.KindText
		ev.Text = m.Text
	default:
		return bot.Event{}, false
	}
	return ev, true
}
