// Package languages resolves flag emojis and language names to translation target codes.
package languages

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	regionalIndicatorA = 0x1F1E6
	regionalIndicatorZ = 0x1F1FF
	blackFlag          = 0x1F3F4
	tagLatinSmallA     = 0xE0061
	tagLatinSmallZ     = 0xE007A
	cancelTag          = 0xE007F
	variationSelector  = 0xFE0F
)

// LanguageForEmoji returns the language code a flag emoji requests a translation into
func LanguageForEmoji(emoji string) (string, bool) {
	emoji = strings.TrimSpace(strings.ReplaceAll(emoji, string(rune(variationSelector)), ""))

	if country, ok := decodeRegionalFlag(emoji); ok {
		code, found := countryLanguages[country]
		return code, found
	}
	if subdivision, ok := decodeTagFlag(emoji); ok {
		code, found := subdivisionLanguages[subdivision]
		return code, found
	}
	return "", false
}

// decodeRegionalFlag turns a pair of regional indicator symbols into a country code
func decodeRegionalFlag(emoji string) (string, bool) {
	runes := []rune(emoji)
	if len(runes) != 2 {
		return "", false
	}

	var country strings.Builder
	for _, r := range runes {
		if r < regionalIndicatorA || r > regionalIndicatorZ {
			return "", false
		}
		country.WriteRune('A' + (r - regionalIndicatorA))
	}
	return country.String(), true
}

// decodeTagFlag reads the subdivision code out of a black flag tag sequence such as England's
func decodeTagFlag(emoji string) (string, bool) {
	runes := []rune(emoji)
	if len(runes) < 3 || runes[0] != blackFlag || runes[len(runes)-1] != cancelTag {
		return "", false
	}

	var subdivision strings.Builder
	for _, r := range runes[1 : len(runes)-1] {
		if r < tagLatinSmallA || r > tagLatinSmallZ {
			return "", false
		}
		subdivision.WriteRune('a' + (r - tagLatinSmallA))
	}
	return subdivision.String(), true
}

// FlagForCountry builds the flag emoji of an ISO 3166-1 alpha-2 country code
func FlagForCountry(country string) string {
	country = strings.ToUpper(country)
	if len(country) != 2 {
		return ""
	}

	var flag strings.Builder
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return ""
		}
		flag.WriteRune(regionalIndicatorA + (r - 'A'))
	}
	return flag.String()
}

func flagForSubdivision(subdivision string) string {
	var flag strings.Builder
	flag.WriteRune(blackFlag)
	for _, r := range subdivision {
		flag.WriteRune(tagLatinSmallA + (r - 'a'))
	}
	flag.WriteRune(cancelTag)
	return flag.String()
}

// DisplayName returns a human readable name for a language code.
// Unknown codes are returned upper-cased.
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if name, ok := languageNames[code]; ok {
		return name
	}

	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}

// CodeForName resolves a flag emoji or an English language name such as "french"
func CodeForName(emojiOrName string) (string, bool) {
	if code, ok := LanguageForEmoji(emojiOrName); ok {
		return code, true
	}

	code, ok := languageAliases[strings.ToLower(strings.TrimSpace(emojiOrName))]
	return code, ok
}

// SupportedEmojis lists every flag emoji that maps to a language, sorted by country code
func SupportedEmojis() []string {
	countries := make([]string, 0, len(countryLanguages))
	for country := range countryLanguages {
		countries = append(countries, country)
	}
	slices.Sort(countries)

	emojis := make([]string, 0, len(countries)+len(subdivisionLanguages))
	for _, country := range countries {
		emojis = append(emojis, FlagForCountry(country))
	}

	subdivisions := make([]string, 0, len(subdivisionLanguages))
	for subdivision := range subdivisionLanguages {
		subdivisions = append(subdivisions, subdivision)
	}
	slices.Sort(subdivisions)
	for _, subdivision := range subdivisions {
		emojis = append(emojis, flagForSubdivision(subdivision))
	}
	return emojis
}

// SupportedLanguages maps every language code reachable by name to its title-cased alias
func SupportedLanguages() map[string]string {
	supported := make(map[string]string, len(languageAliases))
	for name, code := range languageAliases {
		supported[code] = strings.ToUpper(name[:1]) + name[1:]
	}
	return supported
}
