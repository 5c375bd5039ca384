package translations

import (
	"strings"
	"unicode"

	"github.com/mythicavalon/EchoLang/core"
)

const truncationMarker = "..."

// PrepareText normalizes message content before it is sent to a translator.
// Format characters such as zero-width spaces and the BOM are dropped, whitespace runs
// collapse to a single space and the result is cut to maxLength runes plus a marker.
func PrepareText(text string, maxLength int) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, text)

	prepared := strings.Join(strings.Fields(stripped), " ")

	if maxLength > 0 {
		runes := []rune(prepared)
		if len(runes) > maxLength {
			prepared = strings.TrimRightFunc(string(runes[:maxLength]), unicode.IsSpace) + truncationMarker
		}
	}
	return prepared
}

// truncateRunes cuts text to at most maxLength runes without a marker
func truncateRunes(text string, maxLength int) string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength])
}

var failureSentinels = []string{
	"[empty message",
	"[translation failed",
	"[translation error",
	"[translation unavailable",
	"[service unavailable",
	"[connection timeout",
	"[rate limited",
	"[quota exceeded",
	"translation failed",
	"translation error",
	"translation unavailable",
	"error:",
}

// isFailureSentinel reports whether a backend answered with a canned failure string instead of a translation
func isFailureSentinel(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, sentinel := range failureSentinels {
		if strings.HasPrefix(lower, sentinel) {
			return true
		}
	}
	return false
}

// classifyResult decides whether a translator call produced a genuine translation.
// Failures keep the most specific kind that can be derived from the error or sentinel text.
func classifyResult(text string, err error) (core.TranslationFailureKind, bool) {
	if err != nil {
		return core.TranslationFailureKindOf(err), false
	}
	if strings.TrimSpace(text) == "" {
		return core.TranslationFailureUnknown, false
	}
	if isFailureSentinel(text) {
		return core.ClassifyTranslationFailure(text), false
	}
	return "", true
}
