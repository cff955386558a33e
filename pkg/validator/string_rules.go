package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Field(field, value, func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, ValidationError{
		Message:        "field is required",
		TranslationKey: "validation.required",
	})
}

// MaxLenString limits the number of characters, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return Field(field, value, func(v string) bool {
		return utf8.RuneCountInString(v) <= max
	}, ValidationError{
		Message:           fmt.Sprintf("must be at most %d characters long", max),
		TranslationKey:    "validation.max_length",
		TranslationValues: map[string]any{"max": max},
	})
}
