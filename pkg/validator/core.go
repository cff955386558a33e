package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes a violation attached to a single field.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors aggregates field violations and implements error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match any non-empty set of violations.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed && len(ve) > 0
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for a field in insertion order.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, err := range ve {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

// Fields returns the distinct violated fields in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool, len(ve))
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule is a check bound to a named field together with the violation it reports.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Predicate decides whether a single value is acceptable.
// Predicates must be pure: no side effects, no panics for any input.
type Predicate[T any] func(T) bool

// Field registers a predicate against a named field. The returned rule
// reports violation when the predicate rejects value.
func Field[T any](field string, value T, accept Predicate[T], violation ValidationError) Rule {
	violation.Field = field
	if violation.TranslationValues == nil {
		violation.TranslationValues = map[string]any{}
	}
	violation.TranslationValues["field"] = field
	return Rule{
		Check: func() bool { return accept(value) },
		Error: violation,
	}
}

// Apply evaluates every rule and aggregates violations.
// It returns nil when all rules pass, ValidationErrors otherwise.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Validatable is implemented by records that declare their own rules.
type Validatable interface {
	Rules() []Rule
}

// Validate applies the rules declared by v.
func Validate(v Validatable) error {
	if v == nil {
		return nil
	}
	return Apply(v.Rules()...)
}

// ExtractValidationErrors returns the violations carried by err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
