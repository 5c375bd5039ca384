package googletranslate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/tidwall/gjson"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/core"
)

const translatePath = "/translate_a/single"

// GoogleTranslateClient implements clients.Translator against the public Google Translate endpoint
type GoogleTranslateClient struct {
	client *req.Client
}

func NewGoogleTranslateClient(baseURL string, timeout time.Duration) *GoogleTranslateClient {
	return &GoogleTranslateClient{
		client: req.C().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetUserAgent("EchoLang/1.0").
			SetCommonHeader("Accept", "application/json"),
	}
}

func (c *GoogleTranslateClient) Name() string {
	return "google"
}

func (c *GoogleTranslateClient) Translate(
	ctx context.Context,
	text, targetLanguage string,
) (*clients.TranslationResult, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "auto",
			"tl":     targetLanguage,
			"dt":     "t",
			"q":      text,
		}).
		Get(translatePath)
	if err != nil {
		return nil, core.NewTranslationError(
			core.TranslationFailureKindOf(err),
			fmt.Errorf("google translate request failed: %w", err),
		)
	}

	if resp.IsErrorState() {
		body := resp.String()
		return nil, core.NewTranslationError(
			failureKindForStatus(resp.GetStatusCode(), body),
			fmt.Errorf("google translate returned status %d: %s", resp.GetStatusCode(), body),
		)
	}

	return parseTranslation(resp.Bytes())
}

// parseTranslation reads the translated segments and the detected source language
// out of the nested array the endpoint answers with
func parseTranslation(body []byte) (*clients.TranslationResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, core.NewTranslationError(
			core.TranslationFailureUnknown,
			fmt.Errorf("google translate returned malformed response"),
		)
	}

	parsed := gjson.ParseBytes(body)

	var translated strings.Builder
	for _, segment := range parsed.Get("0.#.0").Array() {
		translated.WriteString(segment.String())
	}

	if strings.TrimSpace(translated.String()) == "" {
		return nil, core.NewTranslationError(
			core.TranslationFailureUnknown,
			fmt.Errorf("google translate returned no translated text"),
		)
	}

	return &clients.TranslationResult{
		Text:           translated.String(),
		SourceLanguage: parsed.Get("2").String(),
	}, nil
}

func failureKindForStatus(status int, body string) core.TranslationFailureKind {
	switch status {
	case http.StatusTooManyRequests:
		return core.TranslationFailureRateLimited
	case http.StatusForbidden:
		return core.TranslationFailureQuotaExceeded
	case http.StatusBadRequest:
		return core.TranslationFailureUnsupportedLanguage
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return core.TranslationFailureTimeout
	default:
		return core.ClassifyTranslationFailure(body)
	}
}
