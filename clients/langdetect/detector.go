package langdetect

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/mo"
)

const minTextLengthForDetection = 5

var detectableLanguages = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish, lingua.Italian,
	lingua.Portuguese, lingua.Dutch, lingua.Russian, lingua.Ukrainian, lingua.Polish,
	lingua.Swedish, lingua.Danish, lingua.Finnish, lingua.Turkish, lingua.Greek,
	lingua.Arabic, lingua.Hebrew, lingua.Persian, lingua.Hindi, lingua.Japanese,
	lingua.Korean, lingua.Chinese, lingua.Vietnamese, lingua.Thai, lingua.Indonesian,
}

// LinguaDetector implements clients.LanguageDetector with an offline n-gram model
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectableLanguages...).
			Build(),
	}
}

// DetectLanguage returns the ISO 639-1 code of the most likely language, or None when the text
// is too short or ambiguous
func (d *LinguaDetector) DetectLanguage(ctx context.Context, text string) (mo.Option[string], error) {
	if err := ctx.Err(); err != nil {
		return mo.None[string](), err
	}

	cleanText := strings.TrimSpace(text)
	if utf8.RuneCountInString(cleanText) < minTextLengthForDetection {
		return mo.None[string](), nil
	}

	language, exists := d.detector.DetectLanguageOf(cleanText)
	if !exists {
		return mo.None[string](), nil
	}
	return mo.Some(strings.ToLower(language.IsoCode639_1().String())), nil
}
