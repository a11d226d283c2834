package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Recorder backends
const (
	RecorderSheets     = "sheets"
	RecorderClickHouse = "clickhouse"
	RecorderMock       = "mock"
)

// Registry backends
const (
	RegistryFile  = "file"
	RegistryRedis = "redis"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminIDs      []int64

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // Base URL for webhook (required if WebhookMode is true)
	Port        string

	// Directory of settings.json, users.txt and registration_message.txt
	DataDir string

	RecorderBackend string
	RegistryBackend string

	// Google configuration
	SpreadsheetID         string
	GoogleCredentials     string // inline service-account JSON
	GoogleCredentialsFile string
	DriveBackup           bool
	DriveFolderID         string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	BroadcastRate float64 // messages per second
	LogDev        bool
}

// NeedsGoogle reports whether Google credentials are required
func (c *Config) NeedsGoogle() bool {
	return c.RecorderBackend == RecorderSheets || c.DriveBackup
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Admin IDs (optional, comma-separated)
	if adminIDsStr := os.Getenv("ADMIN_IDS"); adminIDsStr != "" {
		for _, idStr := range strings.Split(adminIDsStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID in ADMIN_IDS: %s", idStr)
			}
			config.AdminIDs = append(config.AdminIDs, id)
		}
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}
	config.Port = getEnv("PORT", "8080")
	config.DataDir = getEnv("DATA_DIR", ".")
	config.LogDev = os.Getenv("LOG_DEV") == "true"

	rate, err := strconv.ParseFloat(getEnv("BROADCAST_RATE", "25"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BROADCAST_RATE: %w", err)
	}
	config.BroadcastRate = rate

	// Google configuration
	config.GoogleCredentials = os.Getenv("GOOGLE_CREDENTIALS")
	config.GoogleCredentialsFile = getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	config.DriveBackup = os.Getenv("DRIVE_BACKUP") == "true"
	config.DriveFolderID = os.Getenv("DRIVE_FOLDER_ID")

	config.RecorderBackend = getEnv("RECORDER_BACKEND", RecorderSheets)
	switch config.RecorderBackend {
	case RecorderSheets:
		config.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
		if config.SpreadsheetID == "" {
			return nil, fmt.Errorf("SPREADSHEET_ID is required when RECORDER_BACKEND is %s", RecorderSheets)
		}
	case RecorderClickHouse:
		if err := loadClickHouse(config); err != nil {
			return nil, err
		}
	case RecorderMock:
	default:
		return nil, fmt.Errorf("unknown RECORDER_BACKEND: %s", config.RecorderBackend)
	}

	config.RegistryBackend = getEnv("REGISTRY_BACKEND", RegistryFile)
	switch config.RegistryBackend {
	case RegistryFile:
	case RegistryRedis:
		config.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
		config.RedisPassword = os.Getenv("REDIS_PASSWORD")
		db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		config.RedisDB = db
	default:
		return nil, fmt.Errorf("unknown REGISTRY_BACKEND: %s", config.RegistryBackend)
	}

	if config.NeedsGoogle() && config.GoogleCredentials == "" {
		if _, err := os.Stat(config.GoogleCredentialsFile); err != nil {
			return nil, fmt.Errorf("GOOGLE_CREDENTIALS or a readable GOOGLE_CREDENTIALS_FILE is required: %w", err)
		}
	}

	return config, nil
}

// loadClickHouse reads the ClickHouse recorder settings
func loadClickHouse(config *Config) error {
	config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
	if config.ClickHouseHost == "" {
		return fmt.Errorf("CLICKHOUSE_HOST is required when RECORDER_BACKEND is %s", RecorderClickHouse)
	}

	port, err := strconv.Atoi(getEnv("CLICKHOUSE_PORT", "9000"))
	if err != nil {
		return fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
	}
	config.ClickHousePort = port

	config.ClickHouseDatabase = getEnv("CLICKHOUSE_DATABASE", "default")
	config.ClickHouseUser = getEnv("CLICKHOUSE_USER", "default")
	config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
	config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	return nil
}

// getEnv retrieves environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
