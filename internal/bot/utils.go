package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// reply sends plain text
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	b.send(ctx, OutboundMessage{ChatID: chatID, Text: text})
}

// replyf sends formatted plain text
func (b *Bot) replyf(ctx context.Context, chatID int64, format string, args ...interface{}) {
	b.reply(ctx, chatID, fmt.Sprintf(format, args...))
}

// send delivers a message, logging failures. It returns the message id or 0.
func (b *Bot) send(ctx context.Context, msg OutboundMessage) int {
	id, err := b.gateway.Send(ctx, msg)
	if err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err),
		)
		return 0
	}
	return id
}
