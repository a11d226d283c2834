package bot

import (
	"context"

	"go.uber.org/zap"
)

// onBroadcast delivers the text to every registered user. A failed
// delivery is logged and skipped.
func (b *Bot) onBroadcast(ctx context.Context, ev Event, s *Session) State {
	ids, err := b.registry.List(ctx)
	if err != nil {
		b.logger.Error("Failed to load registry for broadcast", zap.Error(err))
		b.reply(ctx, ev.ChatID, textRecipientsFailed)
		return StateIdle
	}
	if len(ids) == 0 {
		b.reply(ctx, ev.ChatID, textNoRecipients)
		return StateIdle
	}

	b.logger.Info("Broadcast started",
		zap.Int64("user_id", ev.UserID),
		zap.Int("recipients", len(ids)),
	)

	sent, failed := 0, 0
	for _, id := range ids {
		if err := b.limiter.Wait(ctx); err != nil {
			b.logger.Warn("Broadcast interrupted", zap.Int("sent", sent), zap.Error(err))
			break
		}
		if _, err := b.gateway.Send(ctx, OutboundMessage{ChatID: id, Text: ev.Text}); err != nil {
			failed++
			b.logger.Warn("Failed to deliver broadcast",
				zap.Int64("chat_id", id),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	b.logger.Info("Broadcast finished", zap.Int("sent", sent), zap.Int("failed", failed))
	b.replyf(ctx, ev.ChatID, textBroadcastDone, sent)
	return StateIdle
}
