package translations

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/config"
	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/core/log"
	"github.com/mythicavalon/EchoLang/languages"
	"github.com/mythicavalon/EchoLang/models"
	"github.com/mythicavalon/EchoLang/services"
	"github.com/mythicavalon/EchoLang/telemetry"
)

const translationEmbedColor = 0x00ff00

var _ services.TranslationsService = (*TranslationsService)(nil)

type TranslationsService struct {
	sessionsService services.SessionsService
	discordClient   clients.DiscordClient
	translator      clients.Translator
	detector        clients.LanguageDetector
	translationLog  services.TranslationLogService
	config          config.TranslationConfig

	limiter *rate.Limiter
	jitter  func() time.Duration
	sleep   func(ctx context.Context, d time.Duration) error

	mu            sync.Mutex
	lastRequestAt time.Time
}

// NewTranslationsService creates the coordinator. detector and translationLog may be nil.
func NewTranslationsService(
	sessionsService services.SessionsService,
	discordClient clients.DiscordClient,
	translator clients.Translator,
	detector clients.LanguageDetector,
	translationLog services.TranslationLogService,
	cfg config.TranslationConfig,
) *TranslationsService {
	limit := rate.Inf
	if cfg.RateLimitDelay > 0 {
		limit = rate.Every(cfg.RateLimitDelay)
	}

	return &TranslationsService{
		sessionsService: sessionsService,
		discordClient:   discordClient,
		translator:      translator,
		detector:        detector,
		translationLog:  translationLog,
		config:          cfg,
		limiter:         rate.NewLimiter(limit, 1),
		jitter:          randomJitter,
		sleep:           sleepContext,
	}
}

// RequestTranslation delivers the translation of the request's message into the thread owned by
// the message's session. A language is translated at most once per session; failures are posted
// to the thread and leave the language open for a later retry.
func (s *TranslationsService) RequestTranslation(
	ctx context.Context,
	request models.TranslationRequest,
) (models.TranslationOutcome, error) {
	messageID := request.Message.ID
	languageCode := request.LanguageCode
	logger := log.With("message_id", messageID, "language", languageCode)

	claim, err := s.sessionsService.ClaimLanguage(messageID, languageCode)
	if err != nil {
		return s.finish(models.TranslationOutcome{
			Status:       models.TranslationOutcomeFailed,
			LanguageCode: languageCode,
			FailureKind:  core.TranslationFailureUnknown,
		}), fmt.Errorf("failed to claim language: %w", err)
	}

	switch claim {
	case models.ClaimResultAlreadyDelivered:
		logger.Info("⏭️ Language already translated for message")
		return s.finish(models.TranslationOutcome{
			Status:       models.TranslationOutcomeAlreadyDelivered,
			LanguageCode: languageCode,
		}), nil
	case models.ClaimResultInProgress:
		logger.Info("⏳ Translation already in progress for message")
		return s.finish(models.TranslationOutcome{
			Status:       models.TranslationOutcomeInProgress,
			LanguageCode: languageCode,
		}), nil
	}

	// keep the thread alive for the duration of the translator call
	if err := s.sessionsService.ResetDeletionTimer(messageID); err != nil {
		s.sessionsService.ReleaseLanguage(messageID, languageCode)
		return s.finish(models.TranslationOutcome{
			Status:       models.TranslationOutcomeFailed,
			LanguageCode: languageCode,
			FailureKind:  core.TranslationFailureUnknown,
		}), fmt.Errorf("failed to reset deletion timer: %w", err)
	}

	session, ok := s.sessionsService.Get(messageID).Get()
	if !ok {
		s.sessionsService.ReleaseLanguage(messageID, languageCode)
		return s.finish(models.TranslationOutcome{
			Status:       models.TranslationOutcomeFailed,
			LanguageCode: languageCode,
			FailureKind:  core.TranslationFailureUnknown,
		}), fmt.Errorf("session for message %s: %w", messageID, core.ErrSessionNotFound)
	}
	threadID := session.Thread.ID

	logger.Info("📋 Starting to translate message", "thread_id", threadID, "translator", s.translator.Name())

	text := PrepareText(request.Message.Content, s.config.MaxTextLength)
	result, attempts, failureKind := s.translateWithRetry(ctx, text, languageCode)

	if result == nil {
		s.sessionsService.ReleaseLanguage(messageID, languageCode)

		outcome := models.TranslationOutcome{
			Status:       models.TranslationOutcomeFailed,
			LanguageCode: languageCode,
			FailureKind:  failureKind,
			Attempts:     attempts,
		}
		logger.Warn("❌ Translation failed after all attempts", "attempts", attempts, "failure_kind", failureKind)

		if _, err := s.discordClient.SendMessage(ctx, threadID, failureMessage(languageCode, failureKind, attempts)); err != nil {
			s.handlePostError(messageID, err)
			return s.finish(outcome), fmt.Errorf("failed to post translation failure: %w", err)
		}
		return s.finish(outcome), nil
	}

	outcome := models.TranslationOutcome{
		Status:         models.TranslationOutcomeDelivered,
		LanguageCode:   languageCode,
		Text:           result.Text,
		SourceLanguage: s.sourceLanguage(ctx, text, result),
		Attempts:       attempts,
	}
	if !strings.EqualFold(languageCode, s.config.BaseLanguage) &&
		strings.EqualFold(strings.TrimSpace(result.Text), text) {
		outcome.NoTranslationNeeded = true
		logger.Info("🔁 Translator returned the input unchanged")
	}

	embed := translationEmbed(outcome, request.Requester)
	if _, err := s.discordClient.SendEmbed(ctx, threadID, embed); err != nil {
		s.sessionsService.ReleaseLanguage(messageID, languageCode)
		s.handlePostError(messageID, err)
		outcome.Status = models.TranslationOutcomeFailed
		outcome.FailureKind = core.TranslationFailureUnknown
		return s.finish(outcome), fmt.Errorf("failed to post translation: %w", err)
	}

	if err := s.sessionsService.MarkTranslated(messageID, languageCode); err != nil {
		// the thread was reclaimed while posting; the translation is visible regardless
		logger.Warn("⚠️ Could not mark language as translated", "error", err)
	}

	s.recordTranslation(ctx, request, session, outcome)

	logger.Info("📋 Completed successfully - posted translation", "thread_id", threadID, "attempts", attempts)
	return s.finish(outcome), nil
}

// translateWithRetry calls the translator up to RetryAttempts times. A nil result means every
// attempt failed and the returned kind describes the last failure.
func (s *TranslationsService) translateWithRetry(
	ctx context.Context,
	text, languageCode string,
) (*clients.TranslationResult, int, core.TranslationFailureKind) {
	lastKind := core.TranslationFailureUnknown

	for attempt := 0; attempt < s.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt, s.config.BackoffBase, s.config.BackoffMultiplier, s.jitter())
			if err := s.sleep(ctx, delay); err != nil {
				return nil, attempt, core.TranslationFailureKindOf(err)
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, attempt, core.TranslationFailureKindOf(err)
		}

		result, err := s.callTranslator(ctx, text, languageCode)

		var translated string
		if result != nil {
			translated = result.Text
		}
		kind, ok := classifyResult(translated, err)
		if ok {
			return result, attempt + 1, ""
		}

		lastKind = kind
		telemetry.TranslationFailuresTotal.WithLabelValues(string(kind)).Inc()
		log.Warn(
			"⚠️ Translation attempt failed",
			"attempt", attempt+1,
			"max_attempts", s.config.RetryAttempts,
			"language", languageCode,
			"failure_kind", kind,
			"error", err,
		)
	}

	return nil, s.config.RetryAttempts, lastKind
}

func (s *TranslationsService) callTranslator(
	ctx context.Context,
	text, languageCode string,
) (*clients.TranslationResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	start := time.Now()
	s.mu.Lock()
	s.lastRequestAt = start
	s.mu.Unlock()

	result, err := s.translator.Translate(callCtx, text, languageCode)
	telemetry.ObserveSince(telemetry.TranslatorDuration.WithLabelValues(s.translator.Name()), start)
	return result, err
}

// sourceLanguage prefers the language reported by the translator and falls back to local detection
func (s *TranslationsService) sourceLanguage(ctx context.Context, text string, result *clients.TranslationResult) string {
	if result.SourceLanguage != "" {
		return strings.ToLower(result.SourceLanguage)
	}
	if s.detector == nil || !s.config.DetectionEnabled {
		return ""
	}

	sample := truncateRunes(text, s.config.DetectionTextLength)
	attempts := max(s.config.DetectionMaxAttempts, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		detected, err := s.detector.DetectLanguage(ctx, sample)
		if err != nil {
			log.Debug("Language detection failed", "attempt", attempt+1, "error", err)
			continue
		}
		return strings.ToLower(detected.OrEmpty())
	}
	return ""
}

// handlePostError drops the session when its thread disappeared behind our back
func (s *TranslationsService) handlePostError(messageID string, err error) {
	if core.IsNotFoundError(err) {
		s.sessionsService.Invalidate(messageID)
	}
	log.Error("❌ Failed to post to translation thread", "message_id", messageID, "error", err)
}

func (s *TranslationsService) recordTranslation(
	ctx context.Context,
	request models.TranslationRequest,
	session models.TranslationSession,
	outcome models.TranslationOutcome,
) {
	if s.translationLog == nil {
		return
	}

	record := &models.TranslationRecord{
		MessageID:      request.Message.ID,
		ChannelID:      request.Message.ChannelID,
		GuildID:        request.Message.GuildID,
		ThreadID:       session.Thread.ID,
		LanguageCode:   outcome.LanguageCode,
		SourceLanguage: outcome.SourceLanguage,
		Attempts:       outcome.Attempts,
	}
	if request.Requester != nil {
		record.RequesterID = request.Requester.GetID()
	}

	if err := s.translationLog.RecordTranslation(ctx, record); err != nil {
		log.Warn("⚠️ Failed to record translation history", "message_id", request.Message.ID, "error", err)
	}
}

func (s *TranslationsService) finish(outcome models.TranslationOutcome) models.TranslationOutcome {
	telemetry.TranslationsTotal.WithLabelValues(string(outcome.Status)).Inc()
	return outcome
}

// Status reports the translator in use and the coordinator's pacing settings
func (s *TranslationsService) Status() models.TranslatorStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.TranslatorStatus{
		Provider:        s.translator.Name(),
		Attempts:        s.config.RetryAttempts,
		RateLimitDelay:  s.config.RateLimitDelay,
		BackoffBase:     s.config.BackoffBase,
		MaxTextLength:   s.config.MaxTextLength,
		LastRequestAt:   s.lastRequestAt,
		DetectorEnabled: s.detector != nil && s.config.DetectionEnabled,
	}
}

func translationEmbed(outcome models.TranslationOutcome, requester models.Identity) clients.DiscordEmbed {
	languageName := languages.DisplayName(outcome.LanguageCode)

	var description strings.Builder
	description.WriteString(outcome.Text)
	if outcome.NoTranslationNeeded {
		fmt.Fprintf(&description, "\n\n*No translation needed: the message already reads as %s*", languageName)
	} else if outcome.SourceLanguage != "" && !strings.EqualFold(outcome.SourceLanguage, outcome.LanguageCode) {
		fmt.Fprintf(&description, "\n\n*Detected source: %s*", strings.ToUpper(outcome.SourceLanguage))
	}

	embed := clients.DiscordEmbed{
		Title:       fmt.Sprintf("Translation (%s)", languageName),
		Description: description.String(),
		Color:       translationEmbedColor,
	}
	if requester != nil {
		embed.Footer = fmt.Sprintf("Translated by %s", requester.GetDisplayName())
	}
	return embed
}

func failureMessage(languageCode string, kind core.TranslationFailureKind, attempts int) string {
	return fmt.Sprintf(
		"❌ Translation to %s failed after %d attempt(s): %s. React with the flag again to retry.",
		languages.DisplayName(languageCode),
		attempts,
		kind.Description(),
	)
}
