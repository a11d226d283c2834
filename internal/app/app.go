package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"partybot/internal/bot"
	"partybot/internal/config"
	"partybot/internal/logger"
	"partybot/internal/models"
	"partybot/internal/settings"
	"partybot/internal/storage"
	"partybot/internal/storage/ch"
	"partybot/internal/storage/file"
	"partybot/internal/storage/gsuite"
	"partybot/internal/storage/redisreg"
	"partybot/internal/storage/stubs"
	"partybot/internal/telegram"
)

// App represents the application
type App struct {
	config *config.Config
	logger *zap.Logger

	settings *settings.Manager
	registry storage.UserRegistry
	recorder storage.Recorder
	template storage.TemplateStore
	closers  []io.Closer

	api     *tgbotapi.BotAPI
	bot     *bot.Bot
	webhook *telegram.Webhook
	server  *http.Server

	stopUpdates context.CancelFunc
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogDev)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envErr != nil {
		log.Info("No .env file found, using system environment variables")
	}

	app := &App{config: cfg, logger: log}

	log.Info("Starting party registration bot",
		zap.String("recorder", cfg.RecorderBackend),
		zap.String("registry", cfg.RegistryBackend),
		zap.Bool("drive_backup", cfg.DriveBackup),
	)

	ctx := context.Background()

	if err := app.initStorage(ctx); err != nil {
		app.closeStorage()
		return nil, err
	}

	if err := app.initBot(); err != nil {
		app.closeStorage()
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// initStorage opens every store and loads the event settings
func (a *App) initStorage(ctx context.Context) error {
	var googleOpt option.ClientOption
	if a.config.NeedsGoogle() {
		opt, err := gsuite.CredentialsOption(ctx, a.config.GoogleCredentials, a.config.GoogleCredentialsFile)
		if err != nil {
			return fmt.Errorf("failed to load Google credentials: %w", err)
		}
		googleOpt = opt
	}

	var remote storage.RemoteFileStore
	if a.config.DriveBackup {
		drive, err := gsuite.NewDriveStore(ctx, a.config.DriveFolderID, a.logger, googleOpt)
		if err != nil {
			return fmt.Errorf("failed to create Drive store: %w", err)
		}
		remote = drive
	}

	// Registry
	switch a.config.RegistryBackend {
	case config.RegistryRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     a.config.RedisAddr,
			Password: a.config.RedisPassword,
			DB:       a.config.RedisDB,
		})
		a.closers = append(a.closers, client)
		reg := redisreg.NewRegistry(client, "", a.logger)
		if err := reg.Ping(ctx); err != nil {
			return err
		}
		a.registry = reg
	default:
		a.registry = file.NewRegistry(a.config.DataDir, remote, a.logger)
	}

	// Recorder
	switch a.config.RecorderBackend {
	case config.RecorderMock:
		a.logger.Info("Using in-memory registration recorder")
		a.recorder = stubs.NewRecorder()
	case config.RecorderClickHouse:
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.String("user", a.config.ClickHouseUser),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		rec, err := ch.NewRecorder(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
			a.logger,
		)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rec)
		a.recorder = rec
	default:
		rec, err := gsuite.NewSheetsRecorder(ctx, a.config.SpreadsheetID, a.logger, googleOpt)
		if err != nil {
			return fmt.Errorf("failed to create Sheets recorder: %w", err)
		}
		a.recorder = rec
	}

	a.template = file.NewTemplateStore(a.config.DataDir, remote, a.logger)

	// Settings: a load failure keeps the defaults
	a.settings = settings.NewManager(
		file.NewSettingsStore(a.config.DataDir, remote, a.logger),
		models.DefaultEventSettings(),
		a.logger,
	)
	if _, err := a.settings.Load(ctx); err != nil {
		a.logger.Error("Failed to load settings, using defaults", zap.Error(err))
	}

	if ids, err := a.registry.List(ctx); err != nil {
		a.logger.Error("Failed to load user registry", zap.Error(err))
	} else {
		a.logger.Info("User registry loaded", zap.Int("users", len(ids)))
	}
	return nil
}

// initBot initializes the Telegram bot
func (a *App) initBot() error {
	api, err := tgbotapi.NewBotAPI(a.config.TelegramToken)
	if err != nil {
		a.logger.Error("Failed to create bot API", zap.Error(err))
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	a.logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))
	a.api = api

	a.bot = bot.NewBot(bot.Deps{
		Gateway:  telegram.NewGateway(api),
		Settings: a.settings,
		Registry: a.registry,
		Recorder: a.recorder,
		Template: a.template,
	}, a.config.AdminIDs, a.logger, bot.WithBroadcastRate(a.config.BroadcastRate))
	a.logger.Info("Bot configured", zap.Int64s("admin_ids", a.config.AdminIDs))
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	if a.config.WebhookMode {
		a.webhook = telegram.NewWebhook(telegram.WebhookQueueSize, a.logger)
	}

	a.server = &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      routes(a.config, a.webhook),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", a.config.Port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// routes builds the HTTP surface. The webhook route exists only in webhook
// mode.
func routes(cfg *config.Config, webhook *telegram.Webhook) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	// Root endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	if cfg.WebhookMode && webhook != nil {
		mux.Handle(telegram.WebhookPath(cfg.TelegramToken), webhook)
	}
	return mux
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	a.stopUpdates = cancel

	if a.config.WebhookMode {
		go a.webhook.Run(ctx, a.bot)
		if err := telegram.SetWebhook(a.api, a.config.WebhookURL, a.config.TelegramToken, a.logger); err != nil {
			cancel()
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
		a.logger.Info("Bot configured for webhook mode")
	} else {
		go telegram.Poll(ctx, a.api, a.bot, a.logger)
	}

	// Wait for interrupt signal
	sig := <-sigChan

	a.logger.Info("Shutting down...", zap.String("signal", sig.String()))
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	// Shutdown HTTP server gracefully, then stop consuming updates
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if a.stopUpdates != nil {
		a.stopUpdates()
	}

	err := a.closeStorage()

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()
	return err
}

// closeStorage closes backend connections, returning the first error
func (a *App) closeStorage() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("Error closing storage", zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	a.closers = nil
	return first
}
