package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"

	"github.com/mythicavalon/EchoLang/clients"
	anthropicclient "github.com/mythicavalon/EchoLang/clients/anthropic"
	discordclient "github.com/mythicavalon/EchoLang/clients/discord"
	"github.com/mythicavalon/EchoLang/clients/googletranslate"
	"github.com/mythicavalon/EchoLang/clients/langdetect"
	"github.com/mythicavalon/EchoLang/config"
	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/db"
	"github.com/mythicavalon/EchoLang/handlers"
	"github.com/mythicavalon/EchoLang/middleware"
	"github.com/mythicavalon/EchoLang/services"
	"github.com/mythicavalon/EchoLang/services/sessions"
	"github.com/mythicavalon/EchoLang/services/translationlog"
	"github.com/mythicavalon/EchoLang/services/translations"
	"github.com/mythicavalon/EchoLang/usecases/reactions"
	"github.com/mythicavalon/EchoLang/utils"
)

const (
	appName           = "echolang"
	eventTimeout      = 30 * time.Second
	shutdownTimeout   = 30 * time.Second
	serverStopTimeout = 5 * time.Second
)

type Options struct {
	EnvFile  []string `long:"env-file" description:"Path to a .env file to load (repeatable, defaults to .env)"`
	LogLevel string   `long:"log-level" description:"Override LOG_LEVEL (debug, info, warn, error)"`
	Port     string   `long:"port" description:"Override PORT for the health and metrics server"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig(opts.EnvFile...)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	instanceLock, err := utils.NewInstanceLock(cfg.InstanceLockPath, cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	if err := instanceLock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if err := instanceLock.Unlock(); err != nil {
			log.Warn("⚠️ Failed to release instance lock", "error", err)
		}
	}()

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.AlertConfig.SlackWebhookURL,
		Environment: cfg.Environment,
		AppName:     appName,
		LogsURL:     cfg.AlertConfig.ServerLogsURL,
	})
	defer alertMiddleware.Wait()

	discordSession, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	discordClient := discordclient.NewDiscordClient(discordSession)

	translator, err := newTranslator(cfg.TranslatorConfig, cfg.TranslationConfig.RequestTimeout)
	if err != nil {
		return err
	}

	var detector clients.LanguageDetector
	if cfg.TranslationConfig.DetectionEnabled {
		detector = langdetect.NewLinguaDetector()
	}

	var translationLog services.TranslationLogService
	if cfg.DatabaseConfig.IsConfigured() {
		dbConn, logService, err := newTranslationLog(cfg.DatabaseConfig)
		if err != nil {
			return err
		}
		defer dbConn.Close()
		translationLog = logService
	}

	sessionsService := sessions.NewSessionsService(discordClient, clients.NewRealScheduler(), cfg.TranslationConfig)
	sessionsService.SetDeletionErrorHandler(alertMiddleware.AlertThreadDeletionFailure)

	translationsService := translations.NewTranslationsService(
		sessionsService,
		discordClient,
		translator,
		detector,
		translationLog,
		cfg.TranslationConfig,
	)
	status := translationsService.Status()
	log.Info("🌐 Translation service ready",
		"provider", status.Provider,
		"attempts", status.Attempts,
		"rate_limit_delay", status.RateLimitDelay,
		"backoff_base", status.BackoffBase,
		"max_text_length", status.MaxTextLength,
		"detector_enabled", status.DetectorEnabled,
	)

	reactionsUseCase := reactions.NewReactionsUseCase(
		discordClient,
		sessionsService,
		translationsService,
		cfg.TranslationConfig.Workers,
		alertMiddleware.WrapBackgroundTask,
	)

	eventsHandler := handlers.NewDiscordEventsHandler(
		discordSession,
		reactionsUseCase,
		alertMiddleware.WrapEventHandler,
		eventTimeout,
	)

	router := mux.NewRouter()
	handlers.NewOpsHTTPHandler(sessionsService, translationsService, translationLog).SetupEndpoints(router)

	c := cors.New(cors.Options{
		AllowedOrigins: splitOrigins(cfg.CORSAllowedOrigins),
		AllowedMethods: []string{"GET", "OPTIONS"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	if err := eventsHandler.StartBot(); err != nil {
		return err
	}

	return handleGracefulShutdown(server, func(ctx context.Context) {
		eventsHandler.StopBot()

		if err := reactionsUseCase.Shutdown(ctx); err != nil {
			log.Warn("⚠️ Translation workers stopped before draining", "error", err)
		}
		if err := sessionsService.Shutdown(ctx); err != nil {
			log.Warn("⚠️ Translation sessions were not cleaned up completely", "error", err)
		}
	})
}

func newTranslator(cfg config.TranslatorConfig, timeout time.Duration) (clients.Translator, error) {
	switch cfg.Provider {
	case config.TranslatorProviderGoogle:
		return googletranslate.NewGoogleTranslateClient(cfg.GoogleTranslateURL, timeout), nil
	case config.TranslatorProviderAnthropic:
		return anthropicclient.NewAnthropicTranslator(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown translator provider %q", cfg.Provider)
	}
}

func newTranslationLog(cfg config.DatabaseConfig) (*sqlx.DB, services.TranslationLogService, error) {
	dbConn, err := db.NewConnection(cfg.URL)
	if err != nil {
		return nil, nil, err
	}

	recordsRepo := db.NewPostgresTranslationRecordsRepository(dbConn, cfg.Schema)
	if err := recordsRepo.EnsureTable(context.Background()); err != nil {
		_ = dbConn.Close()
		return nil, nil, err
	}

	return dbConn, translationlog.NewTranslationLogService(recordsRepo), nil
}

func splitOrigins(value string) []string {
	origins := strings.Split(value, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}

func handleGracefulShutdown(server *http.Server, cleanup func(ctx context.Context)) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case runErr = <-serverErr:
		log.Error("❌ Server error", "error", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	cleanup(ctx)

	serverCtx, serverCancel := context.WithTimeout(context.Background(), serverStopTimeout)
	defer serverCancel()
	if err := server.Shutdown(serverCtx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return errors.Join(runErr, err)
	}

	log.Info("✅ Server stopped gracefully")
	return runErr
}
