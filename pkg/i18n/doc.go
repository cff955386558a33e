// Package i18n translates validation messages into the languages served by
// the API (English plus the Swiss national languages German, French and
// Italian).
//
// Translations are YAML documents keyed by language code; nested keys are
// flattened with dots so that "validation.iban" matches the TranslationKey
// produced by the validator package. Placeholders use the %{name} syntax and
// are filled from ValidationError.TranslationValues.
//
// # Usage
//
//	tr, err := i18n.NewDefault()
//	if err != nil {
//	    return err
//	}
//	lang := tr.Negotiate(r.Header.Get("Accept-Language")) // "de" for "de-CH,de;q=0.9"
//	msg := tr.T(lang, "validation.iban", map[string]any{"field": "iban"})
//
// Language negotiation uses golang.org/x/text/language, so regional variants
// such as de-CH or fr-CH resolve to their base language.
package i18n
