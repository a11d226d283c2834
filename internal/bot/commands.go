package bot

import (
	"context"

	"go.uber.org/zap"
)

// handleCommand dispatches slash commands. Any command except a denied
// /admin and /cancel interrupts the active conversation.
func (b *Bot) handleCommand(ctx context.Context, ev Event) {
	switch ev.Command {
	case "cancel":
		b.handleCancel(ctx, ev)
		return
	case "admin":
		if !b.isAdmin(ev.UserID) {
			b.logger.Warn("Unauthorized admin access attempt",
				zap.Int64("user_id", ev.UserID),
				zap.Int64("chat_id", ev.ChatID),
			)
			b.reply(ctx, ev.ChatID, textNoAccess)
			return
		}
	}

	delete(b.sessions, ev.ChatID)

	switch ev.Command {
	case "start":
		b.handleStart(ctx, ev)
	case "starts":
		b.handleStarts(ctx, ev)
	case "admin":
		b.handleAdmin(ctx, ev)
	default:
		b.reply(ctx, ev.ChatID, textUnknownCommand)
	}
}

// handleStart registers the user and greets them
func (b *Bot) handleStart(ctx context.Context, ev Event) {
	b.registerUser(ctx, ev.ChatID)
	b.reply(ctx, ev.ChatID, textGreeting)
}

// handleStarts clears any leftover reply keyboard and shows the invitation
func (b *Bot) handleStarts(ctx context.Context, ev Event) {
	b.registerUser(ctx, ev.ChatID)

	if id := b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: invisible, RemoveKeyboard: true}); id != 0 {
		if err := b.gateway.Delete(ctx, ev.ChatID, id); err != nil {
			b.logger.Warn("Failed to delete keyboard carrier message",
				zap.Int64("chat_id", ev.ChatID),
				zap.Error(err),
			)
		}
	}

	b.send(ctx, OutboundMessage{
		ChatID: ev.ChatID,
		Text:   b.invitationText(),
		Inline: invitationKeyboard(),
	})
}

// handleAdmin shows the admin menu
func (b *Bot) handleAdmin(ctx context.Context, ev Event) {
	b.send(ctx, OutboundMessage{
		ChatID: ev.ChatID,
		Text:   textAdminMenu,
		Inline: adminKeyboard(),
	})
}

// handleCancel ends the active conversation without persisting anything
func (b *Bot) handleCancel(ctx context.Context, ev Event) {
	s, ok := b.sessions[ev.ChatID]
	if !ok {
		b.reply(ctx, ev.ChatID, textNothingToCancel)
		return
	}
	b.endConversation(ctx, ev.ChatID, s)
}

// registerUser adds the chat to the registry. Failures are logged only.
func (b *Bot) registerUser(ctx context.Context, chatID int64) {
	if _, err := b.registry.Add(ctx, chatID); err != nil {
		b.logger.Error("Failed to add user to registry",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
