package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForEmoji(t *testing.T) {
	tests := []struct {
		name     string
		emoji    string
		expected string
		ok       bool
	}{
		{"France", "🇫🇷", "fr", true},
		{"UnitedStates", "🇺🇸", "en", true},
		{"Brazil", "🇧🇷", "pt", true},
		{"Japan", "🇯🇵", "ja", true},
		{"Belgium", "🇧🇪", "nl", true},
		{"Switzerland", "🇨🇭", "de", true},
		{"England", "🏴\U000E0067\U000E0062\U000E0065\U000E006E\U000E0067\U000E007F", "en", true},
		{"Scotland", "🏴\U000E0067\U000E0062\U000E0073\U000E0063\U000E0074\U000E007F", "gd", true},
		{"Wales", "🏴\U000E0067\U000E0062\U000E0077\U000E006C\U000E0073\U000E007F", "cy", true},
		{"Antarctica", "🇦🇶", "", false},
		{"ThumbsUp", "👍", "", false},
		{"PlainText", "fr", "", false},
		{"Empty", "", "", false},
		{"BlackFlag", "🏴", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := LanguageForEmoji(tt.emoji)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestFlagForCountry(t *testing.T) {
	assert.Equal(t, "🇫🇷", FlagForCountry("fr"))
	assert.Equal(t, "🇩🇪", FlagForCountry("DE"))
	assert.Empty(t, FlagForCountry("FRA"))
	assert.Empty(t, FlagForCountry("1A"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "French", DisplayName("fr"))
	assert.Equal(t, "Scottish Gaelic", DisplayName("gd"))
	assert.Equal(t, "Hawaiian", DisplayName("HAW"))
	// not in the static table, resolved through x/text
	assert.Equal(t, "Dzongkha", DisplayName("dz"))
	assert.Equal(t, "ZZQ", DisplayName("zzq"))
}

func TestCodeForName(t *testing.T) {
	code, ok := CodeForName("French")
	require.True(t, ok)
	assert.Equal(t, "fr", code)

	code, ok = CodeForName("🇪🇸")
	require.True(t, ok)
	assert.Equal(t, "es", code)

	_, ok = CodeForName("klingon")
	assert.False(t, ok)
}

func TestSupportedEmojis(t *testing.T) {
	emojis := SupportedEmojis()

	assert.Len(t, emojis, len(countryLanguages)+len(subdivisionLanguages))
	for _, emoji := range emojis {
		_, ok := LanguageForEmoji(emoji)
		assert.True(t, ok, "emoji %q should resolve", emoji)
	}
}

func TestSupportedLanguages(t *testing.T) {
	supported := SupportedLanguages()

	assert.Equal(t, "French", supported["fr"])
	assert.Equal(t, "Scottish", supported["gd"])
	assert.Len(t, supported, len(languageAliases))
}
