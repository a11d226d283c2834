package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// handleCallback processes inline button presses. Every button except
// "back" starts over, replacing the active conversation.
func (b *Bot) handleCallback(ctx context.Context, ev Event) {
	// Answer the callback query to remove loading state
	if err := b.gateway.AnswerCallback(ctx, ev.CallbackID); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Int64("chat_id", ev.ChatID), zap.Error(err))
	}

	switch ev.Data {
	case cbYes:
		delete(b.sessions, ev.ChatID)
		b.deleteMessage(ctx, ev)
		b.handleYes(ctx, ev)
	case cbNo:
		delete(b.sessions, ev.ChatID)
		b.deleteMessage(ctx, ev)
		b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textDecline, Inline: declineKeyboard()})
	case cbBack:
		b.handleBack(ctx, ev)
	case cbRegister:
		delete(b.sessions, ev.ChatID)
		b.startRegistration(ctx, ev.ChatID)
	case cbAdminChange, cbAdminBroadcast, cbAdminPreMsg:
		b.handleAdminCallback(ctx, ev)
	default:
		b.logger.Debug("Ignoring unknown callback",
			zap.Int64("chat_id", ev.ChatID),
			zap.String("callback_data", ev.Data),
		)
	}
}

// handleYes shows the pre-registration message when one is set, otherwise
// goes straight to the form
func (b *Bot) handleYes(ctx context.Context, ev Event) {
	text, err := b.template.Get(ctx)
	if err != nil {
		b.logger.Error("Failed to load pre-registration message", zap.Error(err))
	}
	if text == "" {
		b.startRegistration(ctx, ev.ChatID)
		return
	}
	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: text, Inline: registerKeyboard()})
}

// handleBack turns the decline message back into the invitation
func (b *Bot) handleBack(ctx context.Context, ev Event) {
	err := b.gateway.Edit(ctx, ev.ChatID, ev.MessageID, b.invitationText(), invitationKeyboard())
	if err != nil {
		b.logger.Error("Failed to restore invitation",
			zap.Int64("chat_id", ev.ChatID),
			zap.Int("message_id", ev.MessageID),
			zap.Error(err),
		)
	}
}

func (b *Bot) startRegistration(ctx context.Context, chatID int64) {
	b.begin(chatID, StateAwaitName)
	b.reply(ctx, chatID, textAskName)
}

// handleAdminCallback opens one of the admin menu actions
func (b *Bot) handleAdminCallback(ctx context.Context, ev Event) {
	if !b.isAdmin(ev.UserID) {
		b.logger.Warn("Unauthorized admin callback attempt",
			zap.Int64("user_id", ev.UserID),
			zap.String("callback_data", ev.Data),
		)
		b.reply(ctx, ev.ChatID, textNoAccess)
		return
	}

	switch ev.Data {
	case cbAdminChange:
		b.begin(ev.ChatID, StateAdminAwaitDate)
		b.reply(ctx, ev.ChatID, textAskDate)
	case cbAdminBroadcast:
		b.begin(ev.ChatID, StateAdminAwaitBroadcast)
		b.reply(ctx, ev.ChatID, textAskBroadcast)
	case cbAdminPreMsg:
		current, err := b.template.Get(ctx)
		if err != nil {
			b.logger.Error("Failed to load pre-registration message", zap.Error(err))
		}
		b.begin(ev.ChatID, StateAdminAwaitPreMessage)
		if current == "" {
			b.reply(ctx, ev.ChatID, textPreMsgEmpty)
			return
		}
		b.reply(ctx, ev.ChatID, fmt.Sprintf(textPreMsgCurrent, current))
	}
}

// deleteMessage removes the message carrying the pressed button
func (b *Bot) deleteMessage(ctx context.Context, ev Event) {
	if ev.MessageID == 0 {
		return
	}
	if err := b.gateway.Delete(ctx, ev.ChatID, ev.MessageID); err != nil {
		b.logger.Warn("Failed to delete invitation message",
			zap.Int64("chat_id", ev.ChatID),
			zap.Int("message_id", ev.MessageID),
			zap.Error(err),
		)
	}
}
