package assistant

import "strings"

// languageKeywords maps a supported answer language to the phrases users
// write to request it, in English or in the language itself.
var languageKeywords = map[string][]string{
	"Hindi":   {"hindi", "हिंदी", "हिन्दी"},
	"Tamil":   {"tamil", "தமிழ்"},
	"Kannada": {"kannada", "ಕನ್ನಡ"},
	"Telugu":  {"telugu", "తెలుగు"},
	"Marathi": {"marathi", "मराठी"},
	"Bengali": {"bengali", "bangla", "বাংলা"},
	"English": {"english"},
}

// DetectLanguage scans free text for a language request. Returns the
// canonical language name, or "" when none is mentioned.
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)
	for language, keywords := range languageKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return language
			}
		}
	}
	return ""
}
