package i18n

import "errors"

var (
	// ErrFailedToParseYAML is returned when a translation document is not valid YAML.
	ErrFailedToParseYAML = errors.New("failed to parse YAML translations")

	// ErrInvalidStructure is returned when a language entry is not a map of keys.
	ErrInvalidStructure = errors.New("invalid translation structure")

	// ErrNoTranslations is returned when a document holds no languages.
	ErrNoTranslations = errors.New("no translations found")

	// ErrDefaultLanguageMissing is returned when the default language has no translations.
	ErrDefaultLanguageMissing = errors.New("default language has no translations")
)
