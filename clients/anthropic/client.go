package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/core"
	"github.com/mythicavalon/EchoLang/languages"
)

const (
	maxOutputTokens        = 2048
	statusOverloaded       = 529
	unsupportedLanguageTag = "UNSUPPORTED_LANGUAGE"
)

// AnthropicTranslator implements clients.Translator with a Claude model
type AnthropicTranslator struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicTranslator creates a translator. Retries are left to the translation coordinator.
func NewAnthropicTranslator(apiKey, model string, opts ...option.RequestOption) *AnthropicTranslator {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &AnthropicTranslator{
		client: anthropic.NewClient(clientOpts...),
		model:  anthropic.Model(model),
	}
}

func (t *AnthropicTranslator) Name() string {
	return "anthropic"
}

func (t *AnthropicTranslator) Translate(
	ctx context.Context,
	text, targetLanguage string,
) (*clients.TranslationResult, error) {
	message, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     t.model,
		MaxTokens: maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt(targetLanguage)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return nil, core.NewTranslationError(failureKindForError(err), fmt.Errorf("anthropic translation failed: %w", err))
	}

	var translated strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			translated.WriteString(block.Text)
		}
	}

	output := strings.TrimSpace(translated.String())
	if output == unsupportedLanguageTag {
		return nil, core.NewTranslationError(
			core.TranslationFailureUnsupportedLanguage,
			fmt.Errorf("model cannot translate into %s", targetLanguage),
		)
	}
	if output == "" {
		return nil, core.NewTranslationError(
			core.TranslationFailureUnknown,
			fmt.Errorf("anthropic returned no text"),
		)
	}

	return &clients.TranslationResult{Text: output}, nil
}

func systemPrompt(targetLanguage string) string {
	return fmt.Sprintf(
		"You translate chat messages. Translate the user's message into %s (language code %s). "+
			"Reply with the translation only, without quotes, notes or explanations. "+
			"Keep emojis, mentions, links and formatting unchanged. "+
			"If you cannot translate into that language, reply with exactly %s.",
		languages.DisplayName(targetLanguage),
		targetLanguage,
		unsupportedLanguageTag,
	)
}

func failureKindForError(err error) core.TranslationFailureKind {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, statusOverloaded:
			return core.TranslationFailureRateLimited
		case http.StatusPaymentRequired, http.StatusForbidden:
			return core.TranslationFailureQuotaExceeded
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return core.TranslationFailureTimeout
		}
	}
	return core.TranslationFailureKindOf(err)
}
