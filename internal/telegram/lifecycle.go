package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"partybot/internal/bot"
)

// Handler consumes bot events
type Handler interface {
	HandleEvent(ctx context.Context, ev bot.Event)
}

// Poll receives updates by long polling until ctx is done
func Poll(ctx context.Context, api *tgbotapi.BotAPI, h Handler, logger *zap.Logger) {
	logger.Info("Starting bot in polling mode")

	// Remove webhook (if any was set previously)
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	logger.Info("Bot started successfully. Waiting for updates...")
	consume(ctx, updates, h, logger)
	api.StopReceivingUpdates()
}

// consume feeds updates to h until the channel closes or ctx is done
func consume(ctx context.Context, updates <-chan tgbotapi.Update, h Handler, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := EventFromUpdate(update)
			if !ok {
				logger.Debug("Skipping unsupported update", zap.Int("update_id", update.UpdateID))
				continue
			}
			h.HandleEvent(ctx, ev)
		}
	}
}

// WebhookPath is the path Telegram posts updates to
func WebhookPath(token string) string {
	return "/" + token
}

// SetWebhook points Telegram at baseURL followed by the token path
func SetWebhook(api *tgbotapi.BotAPI, baseURL, token string, logger *zap.Logger) error {
	url := strings.TrimSuffix(baseURL, "/") + WebhookPath(token)
	logger.Info("Setting up webhook", zap.String("webhook_url", strings.TrimSuffix(baseURL, "/")))

	webhookConfig, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	webhookConfig.MaxConnections = 40

	if _, err := api.Request(webhookConfig); err != nil {
		logger.Error("Failed to set webhook", zap.Error(err))
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	info, err := api.GetWebhookInfo()
	if err != nil {
		logger.Warn("Failed to get webhook info", zap.Error(err))
	} else {
		logger.Info("Webhook set successfully",
			zap.Int("pending_updates", info.PendingUpdateCount),
			zap.String("last_error", info.LastErrorMessage),
		)
	}
	return nil
}

// WebhookQueueSize bounds the updates accepted but not yet handled
const WebhookQueueSize = 100

// Webhook accepts posted updates and queues them for a single consumer, so
// updates are handled in arrival order as in polling mode.
type Webhook struct {
	updates chan tgbotapi.Update
	logger  *zap.Logger
}

// NewWebhook creates a webhook with a queue of the given size
func NewWebhook(size int, logger *zap.Logger) *Webhook {
	return &Webhook{
		updates: make(chan tgbotapi.Update, size),
		logger:  logger,
	}
}

// ServeHTTP ingests one update per POST. Telegram gets its answer as soon as
// the update is queued. A full queue blocks the request until there is room.
func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		wh.logger.Warn("Error decoding webhook update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	select {
	case wh.updates <- update:
	case <-r.Context().Done():
		// Telegram redelivers updates that were not acknowledged
		wh.logger.Warn("Webhook update dropped, queue full", zap.Int("update_id", update.UpdateID))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// Run feeds queued updates to h one at a time until ctx is done
func (wh *Webhook) Run(ctx context.Context, h Handler) {
	wh.logger.Info("Webhook consumer started")
	consume(ctx, wh.updates, h, wh.logger)
}

var _ Handler = (*bot.Bot)(nil)
