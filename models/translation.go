package models

import (
	"time"

	"github.com/mythicavalon/EchoLang/core"
)

type SessionState string

// A message without a session is in the implicit "none" state
const (
	SessionStateActive   SessionState = "active"
	SessionStateDeleting SessionState = "deleting"
	SessionStateGone     SessionState = "gone"
)

// TranslationSession is a read-only snapshot of the state kept for one source message
type TranslationSession struct {
	ID                  string
	MessageID           string
	ChannelID           string
	Thread              ThreadHandle
	TranslatedLanguages []string
	PendingLanguages    []string
	State               SessionState
	Generation          uint64
	CreatedAt           time.Time
	LastActivityAt      time.Time
}

type ClaimResult string

const (
	ClaimResultClaimed          ClaimResult = "claimed"
	ClaimResultAlreadyDelivered ClaimResult = "already_delivered"
	ClaimResultInProgress       ClaimResult = "in_progress"
)

type TranslationRequest struct {
	Message      DiscordMessage
	LanguageCode string
	Requester    Identity
}

type TranslationOutcomeStatus string

const (
	TranslationOutcomeDelivered        TranslationOutcomeStatus = "delivered"
	TranslationOutcomeAlreadyDelivered TranslationOutcomeStatus = "already_delivered"
	TranslationOutcomeInProgress       TranslationOutcomeStatus = "in_progress"
	TranslationOutcomeFailed           TranslationOutcomeStatus = "failed"
)

type TranslationOutcome struct {
	Status         TranslationOutcomeStatus
	LanguageCode   string
	Text           string
	SourceLanguage string
	// NoTranslationNeeded is set when the backend echoed the input back unchanged
	NoTranslationNeeded bool
	FailureKind         core.TranslationFailureKind
	Attempts            int
}

// TranslationRecord is one delivered translation, kept in the optional history table
type TranslationRecord struct {
	ID             string    `db:"id"`
	MessageID      string    `db:"message_id"`
	ChannelID      string    `db:"channel_id"`
	GuildID        string    `db:"guild_id"`
	ThreadID       string    `db:"thread_id"`
	LanguageCode   string    `db:"language_code"`
	SourceLanguage string    `db:"source_language"`
	RequesterID    string    `db:"requester_id"`
	Attempts       int       `db:"attempts"`
	CreatedAt      time.Time `db:"created_at"`
}

type RouteIgnoreReason string

const (
	RouteIgnoreOwnReaction      RouteIgnoreReason = "own_reaction"
	RouteIgnoreUnsupportedEmoji RouteIgnoreReason = "unsupported_emoji"
	RouteIgnoreEmptyMessage     RouteIgnoreReason = "empty_message"
	RouteIgnoreBotAuthor        RouteIgnoreReason = "bot_author"
	RouteIgnoreThreadDenied     RouteIgnoreReason = "thread_denied"
)

// RouteOutcome reports what the reaction router did with an event
type RouteOutcome struct {
	Dispatched   bool
	IgnoreReason RouteIgnoreReason
	LanguageCode string
	ThreadID     string
	NewThread    bool
}

func IgnoredRoute(reason RouteIgnoreReason) RouteOutcome {
	return RouteOutcome{IgnoreReason: reason}
}

// TranslatorStatus describes the translation backend and the coordinator's pacing settings
type TranslatorStatus struct {
	Provider        string
	Attempts        int
	RateLimitDelay  time.Duration
	BackoffBase     time.Duration
	MaxTextLength   int
	LastRequestAt   time.Time
	DetectorEnabled bool
}
