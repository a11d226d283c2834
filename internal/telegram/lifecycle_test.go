package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partybot/internal/bot"
)

// chanHandler forwards events to a channel
type chanHandler chan bot.Event

func (c chanHandler) HandleEvent(ctx context.Context, ev bot.Event) {
	c <- ev
}

func postUpdate(t *testing.T, wh *Webhook, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body)))
	return rec
}

func TestWebhook_QueuesAndRuns(t *testing.T) {
	wh := NewWebhook(1, zap.NewNop())

	rec := postUpdate(t, wh, `{"update_id":1,"message":{"message_id":7,"from":{"id":123},"chat":{"id":456},"text":"Olena"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chanHandler, 1)
	go wh.Run(ctx, events)

	select {
	case ev := <-events:
		assert.Equal(t, bot.KindText, ev.Kind)
		assert.Equal(t, int64(456), ev.ChatID)
		assert.Equal(t, "Olena", ev.Text)
	case <-time.After(time.Second):
		t.Fatal("update was not dispatched")
	}
}

func TestWebhook_KeepsArrivalOrder(t *testing.T) {
	wh := NewWebhook(WebhookQueueSize, zap.NewNop())

	var want []string
	for i := 0; i < 20; i++ {
		text := fmt.Sprintf("msg-%02d", i)
		want = append(want, text)
		body := fmt.Sprintf(`{"update_id":%d,"message":{"message_id":%d,"from":{"id":1},"chat":{"id":1},"text":%q}}`, i, i, text)
		require.Equal(t, http.StatusOK, postUpdate(t, wh, body).Code)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chanHandler, len(want))
	go wh.Run(ctx, events)

	var got []string
	for range want {
		select {
		case ev := <-events:
			got = append(got, ev.Text)
		case <-time.After(time.Second):
			t.Fatal("update was not dispatched")
		}
	}
	assert.Equal(t, want, got)
}

func TestWebhook_FullQueueRejectsWhenRequestEnds(t *testing.T) {
	wh := NewWebhook(1, zap.NewNop())
	body := `{"update_id":1,"message":{"message_id":7,"from":{"id":123},"chat":{"id":456},"text":"a"}}`
	require.Equal(t, http.StatusOK, postUpdate(t, wh, body).Code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body)).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWebhook_Rejects(t *testing.T) {
	wh := NewWebhook(1, zap.NewNop())

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Equal(t, http.StatusBadRequest, postUpdate(t, wh, "{").Code)
}

func TestConsume(t *testing.T) {
	updates := make(chan tgbotapi.Update, 3)
	updates <- tgbotapi.Update{Message: message("one")}
	updates <- tgbotapi.Update{Message: message("")} // unsupported, skipped
	updates <- tgbotapi.Update{Message: message("two")}
	close(updates)

	events := make(chanHandler, 3)
	consume(context.Background(), updates, events, zap.NewNop())
	close(events)

	var texts []string
	for ev := range events {
		texts = append(texts, ev.Text)
	}
	assert.Equal(t, []string{"one", "two"}, texts)
}

func TestConsume_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		consume(ctx, make(chan tgbotapi.Update), make(chanHandler), zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume did not stop")
	}
}

func TestWebhookPath(t *testing.T) {
	require.Equal(t, "/123:abc", WebhookPath("123:abc"))
}
