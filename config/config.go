package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mythicavalon/EchoLang/core/log"
)

type DiscordConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

// TranslationConfig holds the knobs of the thread lifecycle and the translation coordinator
type TranslationConfig struct {
	IdleDeletionWindow   time.Duration
	MaxTextLength        int
	RetryAttempts        int
	RateLimitDelay       time.Duration
	BackoffBase          time.Duration
	BackoffMultiplier    float64
	AutoArchiveMinutes   int
	ThreadName           string
	BaseLanguage         string
	Workers              int
	RequestTimeout       time.Duration
	CleanupOnShutdown    bool
	DetectionTextLength  int
	DetectionEnabled     bool
	DetectionMaxAttempts int
}

// Validate rejects values the coordinator cannot work with
func (c TranslationConfig) Validate() error {
	var errs []error
	if c.IdleDeletionWindow <= 0 {
		errs = append(errs, fmt.Errorf("THREAD_IDLE_DELETION_SECONDS must be positive"))
	}
	if c.MaxTextLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_TEXT_LENGTH must be positive"))
	}
	if c.RetryAttempts <= 0 {
		errs = append(errs, fmt.Errorf("TRANSLATION_RETRY_ATTEMPTS must be positive"))
	}
	if c.RateLimitDelay < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_DELAY_SECONDS must not be negative"))
	}
	if c.BackoffBase < 0 {
		errs = append(errs, fmt.Errorf("BACKOFF_BASE_SECONDS must not be negative"))
	}
	if c.BackoffMultiplier < 1 {
		errs = append(errs, fmt.Errorf("BACKOFF_MULTIPLIER must be at least 1"))
	}
	if c.AutoArchiveMinutes <= 0 {
		errs = append(errs, fmt.Errorf("THREAD_AUTO_ARCHIVE_MINUTES must be positive"))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("TRANSLATION_WORKERS must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("TRANSLATION_TIMEOUT_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}

type TranslatorConfig struct {
	Provider           string
	GoogleTranslateURL string
	AnthropicAPIKey    string
	AnthropicModel     string
}

const (
	TranslatorProviderGoogle    = "google"
	TranslatorProviderAnthropic = "anthropic"
)

// IsConfigured returns true if the selected provider has everything it needs
func (c TranslatorConfig) IsConfigured() bool {
	switch c.Provider {
	case TranslatorProviderGoogle:
		return c.GoogleTranslateURL != ""
	case TranslatorProviderAnthropic:
		return c.AnthropicAPIKey != "" && c.AnthropicModel != ""
	default:
		return false
	}
}

type DatabaseConfig struct {
	URL    string
	Schema string
}

// IsConfigured returns true if the translation history database is configured
func (c DatabaseConfig) IsConfigured() bool {
	return c.URL != "" && c.Schema != ""
}

type AlertConfig struct {
	SlackWebhookURL string
	ServerLogsURL   string
}

// IsConfigured returns true if alerts have somewhere to go
func (c AlertConfig) IsConfigured() bool {
	return c.SlackWebhookURL != ""
}

type AppConfig struct {
	// Core configuration
	Port             string // Optional with default "8080"
	Environment      string
	LogLevel         string
	UseStrictConfig  bool // If true, error when an optional integration is not fully configured
	InstanceLockPath string
	// Comma separated origins allowed to call the operational HTTP endpoints
	CORSAllowedOrigins string

	DiscordConfig     DiscordConfig
	TranslationConfig TranslationConfig
	TranslatorConfig  TranslatorConfig
	DatabaseConfig    DatabaseConfig
	AlertConfig       AlertConfig
}

// LoadConfig reads the environment, optionally seeded from the given .env files
func LoadConfig(envFiles ...string) (*AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Warn("⚠️ Could not load .env file, continuing with system env vars", "error", err)
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	translation, err := loadTranslationConfig()
	if err != nil {
		return nil, err
	}

	useStrictConfig, err := getEnvBool("USE_STRICT_CONFIG", false)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:             getEnvWithDefault("PORT", "8080"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		UseStrictConfig:  useStrictConfig,
		InstanceLockPath: os.Getenv("INSTANCE_LOCK_PATH"),

		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
		},
		TranslationConfig: translation,

		TranslatorConfig: TranslatorConfig{
			Provider:           strings.ToLower(getEnvWithDefault("TRANSLATOR_PROVIDER", TranslatorProviderGoogle)),
			GoogleTranslateURL: getEnvWithDefault("GOOGLE_TRANSLATE_URL", "https://translate.googleapis.com"),
			AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:     getEnvWithDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},

		// Translation history (optional)
		DatabaseConfig: DatabaseConfig{
			URL:    os.Getenv("DB_URL"),
			Schema: os.Getenv("DB_SCHEMA"),
		},

		// Error alerting (optional)
		AlertConfig: AlertConfig{
			SlackWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
			ServerLogsURL:   os.Getenv("SERVER_LOGS_URL"),
		},
	}

	if err := config.TranslationConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid translation configuration: %w", err)
	}

	if config.TranslatorConfig.IsConfigured() {
		log.Info("✅ Translator configured", "provider", config.TranslatorConfig.Provider)
	} else {
		return nil, fmt.Errorf(
			"translator provider %q is not fully configured",
			config.TranslatorConfig.Provider,
		)
	}

	if config.DatabaseConfig.IsConfigured() {
		log.Info("✅ Translation history database configured")
	} else {
		log.Warn("⚠️ Translation history database not configured - history will not be recorded")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("database is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.AlertConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Warn("⚠️ Slack error alerts not configured - errors will only be logged")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("slack alerts are not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func loadTranslationConfig() (TranslationConfig, error) {
	idleSeconds, err := getEnvFloat("THREAD_IDLE_DELETION_SECONDS", 120)
	if err != nil {
		return TranslationConfig{}, err
	}
	maxTextLength, err := getEnvInt("MAX_TEXT_LENGTH", 1000)
	if err != nil {
		return TranslationConfig{}, err
	}
	retryAttempts, err := getEnvInt("TRANSLATION_RETRY_ATTEMPTS", 3)
	if err != nil {
		return TranslationConfig{}, err
	}
	rateLimitDelay, err := getEnvFloat("RATE_LIMIT_DELAY_SECONDS", 0.5)
	if err != nil {
		return TranslationConfig{}, err
	}
	backoffBase, err := getEnvFloat("BACKOFF_BASE_SECONDS", 1)
	if err != nil {
		return TranslationConfig{}, err
	}
	backoffMultiplier, err := getEnvFloat("BACKOFF_MULTIPLIER", 2)
	if err != nil {
		return TranslationConfig{}, err
	}
	autoArchiveMinutes, err := getEnvInt("THREAD_AUTO_ARCHIVE_MINUTES", 60)
	if err != nil {
		return TranslationConfig{}, err
	}
	workers, err := getEnvInt("TRANSLATION_WORKERS", 8)
	if err != nil {
		return TranslationConfig{}, err
	}
	timeoutSeconds, err := getEnvFloat("TRANSLATION_TIMEOUT_SECONDS", 15)
	if err != nil {
		return TranslationConfig{}, err
	}
	cleanupOnShutdown, err := getEnvBool("CLEANUP_ON_SHUTDOWN", true)
	if err != nil {
		return TranslationConfig{}, err
	}
	detectionEnabled, err := getEnvBool("LANGUAGE_DETECTION_ENABLED", true)
	if err != nil {
		return TranslationConfig{}, err
	}

	return TranslationConfig{
		IdleDeletionWindow:   seconds(idleSeconds),
		MaxTextLength:        maxTextLength,
		RetryAttempts:        retryAttempts,
		RateLimitDelay:       seconds(rateLimitDelay),
		BackoffBase:          seconds(backoffBase),
		BackoffMultiplier:    backoffMultiplier,
		AutoArchiveMinutes:   autoArchiveMinutes,
		ThreadName:           getEnvWithDefault("THREAD_NAME", "Translations for message"),
		BaseLanguage:         strings.ToLower(getEnvWithDefault("BASE_LANGUAGE", "en")),
		Workers:              workers,
		RequestTimeout:       seconds(timeoutSeconds),
		CleanupOnShutdown:    cleanupOnShutdown,
		DetectionTextLength:  500,
		DetectionEnabled:     detectionEnabled,
		DetectionMaxAttempts: 2,
	}, nil
}

// DefaultTranslationConfig returns the configuration used when no overrides are set
func DefaultTranslationConfig() TranslationConfig {
	return TranslationConfig{
		IdleDeletionWindow:   120 * time.Second,
		MaxTextLength:        1000,
		RetryAttempts:        3,
		RateLimitDelay:       500 * time.Millisecond,
		BackoffBase:          time.Second,
		BackoffMultiplier:    2,
		AutoArchiveMinutes:   60,
		ThreadName:           "Translations for message",
		BaseLanguage:         "en",
		Workers:              8,
		RequestTimeout:       15 * time.Second,
		CleanupOnShutdown:    true,
		DetectionTextLength:  500,
		DetectionEnabled:     true,
		DetectionMaxAttempts: 2,
	}
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return parsed, nil
}
