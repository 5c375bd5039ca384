package clients

import (
	"context"

	"github.com/samber/mo"

	"github.com/mythicavalon/EchoLang/models"
)

// DiscordClient defines the platform operations the translation bot relies on
type DiscordClient interface {
	// Bot operations
	GetBotUser() (*DiscordBotUser, error)

	// Message operations
	FetchMessage(ctx context.Context, channelID, messageID string) (*models.DiscordMessage, error)
	SendMessage(ctx context.Context, channelID, content string) (*DiscordPostMessageResponse, error)
	SendEmbed(ctx context.Context, channelID string, embed DiscordEmbed) (*DiscordPostMessageResponse, error)
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error

	// Thread operations
	CreateThread(
		ctx context.Context,
		channelID, messageID, name string,
		autoArchiveMinutes int,
	) (*DiscordThreadResponse, error)
	DeleteThread(ctx context.Context, threadID string) error

	// User operations
	GetGuildMember(ctx context.Context, guildID, userID string) (mo.Option[*DiscordUser], error)
	GetCachedUser(userID string) mo.Option[*DiscordUser]
	FetchUser(ctx context.Context, userID string) (*DiscordUser, error)
}

// Translator converts text into a target language.
// Failures are returned as *core.TranslationError so the failure kind survives retries.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (*TranslationResult, error)
	Name() string
}

// LanguageDetector guesses the language of a piece of text
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (mo.Option[string], error)
}
