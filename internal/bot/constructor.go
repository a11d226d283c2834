package bot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"partybot/internal/models"
	"partybot/internal/storage"
)

// DefaultBroadcastRate stays under Telegram's limit of 30 messages per second
const DefaultBroadcastRate = 25

// SettingsManager owns the event settings
type SettingsManager interface {
	Current() models.EventSettings
	Apply(ctx context.Context, s models.EventSettings) error
}

// Deps are the collaborators of the bot
type Deps struct {
	Gateway  Gateway
	Settings SettingsManager
	Registry storage.UserRegistry
	Recorder storage.Recorder
	Template storage.TemplateStore
}

// Option customizes a Bot
type Option func(*Bot)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// WithBroadcastRate limits broadcasts to perSecond messages. Zero or less
// disables the limit.
func WithBroadcastRate(perSecond float64) Option {
	return func(b *Bot) {
		if perSecond <= 0 {
			b.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		b.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithIDGenerator replaces the registration id source
func WithIDGenerator(newID func() string) Option {
	return func(b *Bot) { b.newID = newID }
}

// NewBot creates the conversation engine
func NewBot(deps Deps, adminIDs []int64, logger *zap.Logger, opts ...Option) *Bot {
	admins := make(map[int64]bool)
	for _, id := range adminIDs {
		admins[id] = true
	}

	b := &Bot{
		gateway:  deps.Gateway,
		settings: deps.Settings,
		registry: deps.Registry,
		recorder: deps.Recorder,
		template: deps.Template,
		adminIDs: admins,
		sessions: make(map[int64]*Session),
		limiter:  rate.NewLimiter(rate.Limit(DefaultBroadcastRate), 1),
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}

	if len(admins) == 0 {
		logger.Warn("No administrators configured")
	}
	return b
}

// SessionState returns the conversation state of a chat
func (b *Bot) SessionState(chatID int64) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[chatID]; ok {
		return s.State
	}
	return StateIdle
}
