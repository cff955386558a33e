package i18n

import "golang.org/x/text/language"

// maxAcceptLanguageLength bounds the header parsed per request.
const maxAcceptLanguageLength = 4096

// Negotiate picks the supported language that best matches an
// Accept-Language header, falling back to the default language.
func (t *Translator) Negotiate(header string) string {
	if header == "" {
		return t.defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	_, idx, confidence := t.matcher.Match(parseTags(header)...)
	if confidence == language.No {
		return t.defaultLang
	}
	return t.languages[idx]
}

func parseTags(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}
