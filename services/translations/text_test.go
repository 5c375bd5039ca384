package translations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mythicavalon/EchoLang/core"
)

func TestPrepareText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{"TrimsAndCollapsesWhitespace", "  Hello \n\n  world\t ", 1000, "Hello world"},
		{"StripsZeroWidthCharacters", "Hel\u200blo\u200c wor\u200dld\ufeff", 1000, "Hello world"},
		{"KeepsUnicodeLetters", "Ça va très bien", 1000, "Ça va très bien"},
		{"TruncatesWithMarker", "abcdefghij", 5, "abcde..."},
		{"TruncatesByRunes", "ééééé", 3, "ééé..."},
		{"DropsTrailingSpaceBeforeMarker", "abcd efgh", 5, "abcd..."},
		{"ExactLengthIsKept", "abcde", 5, "abcde"},
		{"EmptyStaysEmpty", " \u200b ", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrepareText(tt.input, tt.maxLength))
		})
	}
}

func TestPrepareText_DefaultLimit(t *testing.T) {
	prepared := PrepareText(strings.Repeat("a", 1500), 1000)

	assert.Equal(t, 1003, len(prepared))
	assert.True(t, strings.HasSuffix(prepared, "..."))
}

func TestClassifyResult(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		err      error
		expected core.TranslationFailureKind
		ok       bool
	}{
		{"Genuine", "Bonjour", nil, "", true},
		{"Empty", "   ", nil, core.TranslationFailureUnknown, false},
		{"FailedSentinel", "[Translation failed - FR]", nil, core.TranslationFailureUnknown, false},
		{"TimeoutSentinel", "[Connection timeout - FR]", nil, core.TranslationFailureTimeout, false},
		{"RateLimitedSentinel", "[Rate limited - FR]", nil, core.TranslationFailureRateLimited, false},
		{"QuotaSentinel", "[Quota exceeded - FR]", nil, core.TranslationFailureQuotaExceeded, false},
		{"ErrorPrefix", "Error: backend exploded", nil, core.TranslationFailureUnknown, false},
		{
			"TypedError",
			"",
			core.NewTranslationError(core.TranslationFailureUnsupportedLanguage, errors.New("bad target")),
			core.TranslationFailureUnsupportedLanguage,
			false,
		},
		{"DeadlineExceeded", "", context.DeadlineExceeded, core.TranslationFailureTimeout, false},
		{"ErrorWinsOverText", "Bonjour", errors.New("quota exceeded"), core.TranslationFailureQuotaExceeded, false},
		{"TextMentioningErrorsIsFine", "There was an error: nothing", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := classifyResult(tt.text, tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	jitter := 150 * time.Millisecond

	assert.Equal(t, time.Duration(0), backoffDelay(0, time.Second, 2, jitter))
	assert.Equal(t, 1150*time.Millisecond, backoffDelay(1, time.Second, 2, jitter))
	assert.Equal(t, 2150*time.Millisecond, backoffDelay(2, time.Second, 2, jitter))
	assert.Equal(t, 4150*time.Millisecond, backoffDelay(3, time.Second, 2, jitter))
	assert.Equal(t, 750*time.Millisecond, backoffDelay(2, 500*time.Millisecond, 1.5, 0))
}

func TestRandomJitter(t *testing.T) {
	for i := 0; i < 100; i++ {
		jitter := randomJitter()
		assert.GreaterOrEqual(t, jitter, minJitter)
		assert.Less(t, jitter, maxJitter)
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
