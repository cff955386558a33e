package validator

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/ibankit/pkg/iban"
)

// IsAcceptableIBAN is the IBAN field predicate. An absent IBAN is acceptable:
// presence is checked by RequiredIBAN. A present IBAN must be valid.
func IsAcceptableIBAN(value *iban.IBAN) bool {
	return value == nil || value.IsValid()
}

// AcceptIBANIn returns the IBAN field predicate for a custom country registry.
func AcceptIBANIn(reg *iban.Registry) Predicate[*iban.IBAN] {
	return func(value *iban.IBAN) bool {
		return value == nil || reg.Validate(*value) == nil
	}
}

// ValidIBAN reports a violation when a present IBAN fails format or checksum checks.
func ValidIBAN(field string, value *iban.IBAN) Rule {
	return ibanRule(field, value, IsAcceptableIBAN)
}

// ValidIBANIn is ValidIBAN against a custom country registry.
func ValidIBANIn(field string, value *iban.IBAN, reg *iban.Registry) Rule {
	return ibanRule(field, value, AcceptIBANIn(reg))
}

func ibanRule(field string, value *iban.IBAN, accept Predicate[*iban.IBAN]) Rule {
	return Field(field, value, accept, ValidationError{
		Message:        "must be a valid IBAN",
		TranslationKey: "validation.iban",
	})
}

// RequiredIBAN reports a violation when no IBAN, or an empty one, was supplied.
func RequiredIBAN(field string, value *iban.IBAN) Rule {
	return Field(field, value, func(v *iban.IBAN) bool {
		return v != nil && !v.IsZero()
	}, ValidationError{
		Message:        "field is required",
		TranslationKey: "validation.required",
	})
}

// IBANCountry restricts a present IBAN to the given country codes.
// Validity is not checked here; combine with ValidIBAN.
func IBANCountry(field string, value *iban.IBAN, countries ...string) Rule {
	return Field(field, value, func(v *iban.IBAN) bool {
		return v == nil || slices.Contains(countries, v.CountryCode())
	}, ValidationError{
		Message:        "IBAN country must be one of " + strings.Join(countries, ", "),
		TranslationKey: "validation.iban_country",
		TranslationValues: map[string]any{
			"countries": strings.Join(countries, ", "),
		},
	})
}
