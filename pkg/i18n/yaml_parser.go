package i18n

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a document keyed by language code and flattens nested
// keys with dots: {de: {validation: {iban: "..."}}} becomes "validation.iban".
func ParseYAML(content []byte) (map[string]map[string]string, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(data) == 0 {
		return nil, ErrNoTranslations
	}

	result := make(map[string]map[string]string, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidStructure, lang, val)
		}
		flat := make(map[string]string)
		if err := flatten(flat, "", tree); err != nil {
			return nil, fmt.Errorf("%w: language %q: %w", ErrInvalidStructure, lang, err)
		}
		result[strings.ToLower(lang)] = flat
	}
	return result, nil
}

func flatten(dst map[string]string, prefix string, tree map[string]any) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			if err := flatten(dst, key, val); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected string or map, got %T", key, v)
		}
	}
	return nil
}
