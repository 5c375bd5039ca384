package services

import (
	"context"

	"github.com/samber/mo"

	"github.com/mythicavalon/EchoLang/models"
)

// SessionsService owns the message -> translation thread index and the idle deletion timers
type SessionsService interface {
	EnsureThread(
		ctx context.Context,
		message models.DiscordMessage,
		requester models.Identity,
	) (models.ThreadHandle, bool, error)
	ResetDeletionTimer(messageID string) error
	MarkTranslated(messageID, languageCode string) error
	HasTranslated(messageID, languageCode string) bool
	ClaimLanguage(messageID, languageCode string) (models.ClaimResult, error)
	ReleaseLanguage(messageID, languageCode string)
	Invalidate(messageID string)
	Get(messageID string) mo.Option[models.TranslationSession]
	ActiveCount() int
	Shutdown(ctx context.Context) error
}

// TranslationsService delivers one translation per message and language into the session thread
type TranslationsService interface {
	RequestTranslation(ctx context.Context, request models.TranslationRequest) (models.TranslationOutcome, error)
	Status() models.TranslatorStatus
}

// TranslationLogService records delivered translations
type TranslationLogService interface {
	RecordTranslation(ctx context.Context, record *models.TranslationRecord) error
	GetTranslationsByMessageID(ctx context.Context, messageID string) ([]*models.TranslationRecord, error)
}
