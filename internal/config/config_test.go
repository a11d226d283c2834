package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv sets the minimal valid environment
func setEnv(t *testing.T, extra map[string]string) {
	t.Helper()
	base := map[string]string{
		"TELEGRAM_BOT_TOKEN": "123:abc",
		"RECORDER_BACKEND":   RecorderMock,
	}
	for k, v := range extra {
		base[k] = v
	}
	for k, v := range base {
		t.Setenv(k, v)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Empty(t, cfg.AdminIDs)
	assert.False(t, cfg.WebhookMode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, RegistryFile, cfg.RegistryBackend)
	assert.Equal(t, 25.0, cfg.BroadcastRate)
	assert.False(t, cfg.NeedsGoogle())
}

func TestLoadFromEnv_MissingToken(t *testing.T) {
	setEnv(t, map[string]string{"TELEGRAM_BOT_TOKEN": ""})

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_AdminIDs(t *testing.T) {
	setEnv(t, map[string]string{"ADMIN_IDS": "1124775269, 382701754,"})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []int64{1124775269, 382701754}, cfg.AdminIDs)

	setEnv(t, map[string]string{"ADMIN_IDS": "1124775269,abc"})
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_Webhook(t *testing.T) {
	setEnv(t, map[string]string{"WEBHOOK_MODE": "true"})
	_, err := LoadFromEnv()
	assert.Error(t, err, "webhook mode needs a URL")

	setEnv(t, map[string]string{"WEBHOOK_MODE": "true", "WEBHOOK_URL": "https://example.com"})
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.WebhookURL)
}

func TestLoadFromEnv_Sheets(t *testing.T) {
	setEnv(t, map[string]string{"RECORDER_BACKEND": RecorderSheets})
	_, err := LoadFromEnv()
	assert.Error(t, err, "sheets needs a spreadsheet id")

	creds := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{}`), 0o600))

	setEnv(t, map[string]string{
		"RECORDER_BACKEND":        RecorderSheets,
		"SPREADSHEET_ID":          "sid",
		"GOOGLE_CREDENTIALS_FILE": creds,
	})
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sid", cfg.SpreadsheetID)
	assert.True(t, cfg.NeedsGoogle())

	setEnv(t, map[string]string{
		"RECORDER_BACKEND":        RecorderSheets,
		"SPREADSHEET_ID":          "sid",
		"GOOGLE_CREDENTIALS_FILE": filepath.Join(t.TempDir(), "missing.json"),
	})
	_, err = LoadFromEnv()
	assert.Error(t, err, "credentials are required")
}

func TestLoadFromEnv_ClickHouse(t *testing.T) {
	setEnv(t, map[string]string{"RECORDER_BACKEND": RecorderClickHouse})
	_, err := LoadFromEnv()
	assert.Error(t, err)

	setEnv(t, map[string]string{"RECORDER_BACKEND": RecorderClickHouse, "CLICKHOUSE_HOST": "localhost"})
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ClickHousePort)
	assert.Equal(t, "default", cfg.ClickHouseDatabase)
	assert.Equal(t, "default", cfg.ClickHouseUser)
}

func TestLoadFromEnv_Redis(t *testing.T) {
	setEnv(t, map[string]string{"REGISTRY_BACKEND": RegistryRedis, "REDIS_DB": "2"})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadFromEnv_UnknownBackend(t *testing.T) {
	setEnv(t, map[string]string{"RECORDER_BACKEND": "excel"})
	_, err := LoadFromEnv()
	assert.Error(t, err)
}
