package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"partybot/internal/models"
)

// onName stores the name and asks for the phone
func (b *Bot) onName(ctx context.Context, ev Event, s *Session) State {
	name := strings.TrimSpace(ev.Text)
	if name == "" {
		b.reply(ctx, ev.ChatID, textAskName)
		return StateAwaitName
	}

	s.Name = name
	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textAskPhone, Reply: phoneKeyboard()})
	return StateAwaitPhone
}

// onPhone accepts a shared contact or typed number
func (b *Bot) onPhone(ctx context.Context, ev Event, s *Session) State {
	raw := ev.Text
	if ev.Kind == KindContact {
		raw = ev.Phone
	}

	phone, err := NormalizePhone(raw)
	if err != nil {
		b.logger.Debug("Rejected phone number",
			zap.Int64("chat_id", ev.ChatID),
			zap.String("phone", phone),
		)
		b.reply(ctx, ev.ChatID, textBadPhone)
		return StateAwaitPhone
	}

	s.Phone = phone
	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textAskUsername, Reply: cancelKeyboard()})
	return StateAwaitUsername
}

// onUsername requires a handle starting with @
func (b *Bot) onUsername(ctx context.Context, ev Event, s *Session) State {
	handle, err := ValidateHandle(ev.Text)
	if err != nil {
		b.logger.Debug("Rejected telegram handle", zap.Int64("chat_id", ev.ChatID))
		b.reply(ctx, ev.ChatID, textBadUsername)
		return StateAwaitUsername
	}

	s.Username = handle
	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textAskSource, Reply: cancelKeyboard()})
	return StateAwaitSource
}

// onSource completes the form and records it under the current event date
func (b *Bot) onSource(ctx context.Context, ev Event, s *Session) State {
	rec := models.Registration{
		ID:           b.newID(),
		ChatID:       ev.ChatID,
		Name:         s.Name,
		Phone:        s.Phone,
		Username:     s.Username,
		Source:       strings.TrimSpace(ev.Text),
		RegisteredAt: b.now(),
	}
	partition := b.settings.Current().Date

	if err := b.recorder.Append(ctx, partition, rec); err != nil {
		b.logger.Error("Failed to record registration",
			zap.Int64("chat_id", ev.ChatID),
			zap.String("partition", partition),
			zap.String("registration_id", rec.ID),
			zap.Error(err),
		)
	} else {
		b.logger.Info("Registration recorded",
			zap.Int64("chat_id", ev.ChatID),
			zap.String("partition", partition),
			zap.String("registration_id", rec.ID),
		)
	}

	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textThanks, RemoveKeyboard: true})
	b.send(ctx, OutboundMessage{ChatID: ev.ChatID, Text: textSocial, Inline: socialKeyboard()})
	return StateIdle
}

// onAdminDate buffers the new event date
func (b *Bot) onAdminDate(ctx context.Context, ev Event, s *Session) State {
	s.Date = strings.TrimSpace(ev.Text)
	b.reply(ctx, ev.ChatID, textAskTime)
	return StateAdminAwaitTime
}

// onAdminTime buffers the new event time
func (b *Bot) onAdminTime(ctx context.Context, ev Event, s *Session) State {
	s.Time = strings.TrimSpace(ev.Text)
	b.reply(ctx, ev.ChatID, textAskLocation)
	return StateAdminAwaitLocation
}

// onAdminLocation applies and persists all three fields at once
func (b *Bot) onAdminLocation(ctx context.Context, ev Event, s *Session) State {
	updated := models.EventSettings{
		Date:     s.Date,
		Time:     s.Time,
		Location: strings.TrimSpace(ev.Text),
	}

	if err := b.settings.Apply(ctx, updated); err != nil {
		b.logger.Error("Failed to persist event settings", zap.Error(err))
	}
	b.logger.Info("Event settings updated",
		zap.Int64("user_id", ev.UserID),
		zap.String("event_date", updated.Date),
		zap.String("event_time", updated.Time),
		zap.String("event_location", updated.Location),
	)

	b.reply(ctx, ev.ChatID, textEventUpdated)
	return StateIdle
}

// onPreMessage replaces the pre-registration message
func (b *Bot) onPreMessage(ctx context.Context, ev Event, s *Session) State {
	if err := b.template.Set(ctx, strings.TrimSpace(ev.Text)); err != nil {
		b.logger.Error("Failed to save pre-registration message", zap.Error(err))
		b.reply(ctx, ev.ChatID, textPreMsgSaveFailed)
		return StateIdle
	}

	b.reply(ctx, ev.ChatID, textPreMsgUpdated)
	return StateIdle
}
