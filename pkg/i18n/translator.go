package i18n

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when negotiation finds no better match.
const DefaultLanguage = "en"

//go:embed messages.yaml
var defaultMessages []byte

// Translator resolves translation keys to messages. It is immutable after
// construction and safe for concurrent use.
type Translator struct {
	translations map[string]map[string]string
	defaultLang  string
	languages    []string
	matcher      language.Matcher
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// New creates a Translator from parsed translations. The default language
// must be present; it is also the first entry offered to the language matcher.
func New(translations map[string]map[string]string, opts ...Option) (*Translator, error) {
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}

	t := &Translator{
		translations: translations,
		defaultLang:  DefaultLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}
	if _, ok := translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageMissing, t.defaultLang)
	}

	langs := slices.Sorted(maps.Keys(translations))
	langs = slices.DeleteFunc(langs, func(l string) bool { return l == t.defaultLang })
	t.languages = append([]string{t.defaultLang}, langs...)

	tags := make([]language.Tag, 0, len(t.languages))
	for _, l := range t.languages {
		tags = append(tags, language.Make(l))
	}
	t.matcher = language.NewMatcher(tags)
	return t, nil
}

// NewDefault returns a Translator with the embedded validation messages.
func NewDefault() (*Translator, error) {
	translations, err := ParseYAML(defaultMessages)
	if err != nil {
		return nil, err
	}
	return New(translations)
}

// Languages returns the supported language codes, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// T translates key into lang, replacing %{name} placeholders with values.
// Missing keys fall back to the default language, then to the key itself.
func (t *Translator) T(lang, key string, values map[string]any) string {
	msg, ok := t.translations[strings.ToLower(lang)][key]
	if !ok {
		msg, ok = t.translations[t.defaultLang][key]
	}
	if !ok {
		return key
	}
	return interpolate(msg, values)
}

func interpolate(msg string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(msg, "%{") {
		return msg
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "%{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
