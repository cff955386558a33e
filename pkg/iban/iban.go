package iban

import (
	"log/slog"
	"strings"
	"unicode"
)

// IBAN is an immutable International Bank Account Number.
// It stores only the normalized input; every query is recomputed from it.
// The zero value is the empty IBAN, which is never valid.
type IBAN struct {
	value string
}

// New wraps raw input without validating it.
func New(raw string) IBAN {
	return IBAN{value: Normalize(raw)}
}

// Parse wraps raw input and validates it against the default registry.
func Parse(raw string) (IBAN, error) {
	i := New(raw)
	if err := i.Validate(); err != nil {
		return IBAN{}, err
	}
	return i, nil
}

// Normalize removes all whitespace from raw. Case and order are kept.
func Normalize(raw string) string {
	if strings.IndexFunc(raw, unicode.IsSpace) < 0 {
		return raw
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// String returns the normalized value.
func (i IBAN) String() string {
	return i.value
}

// IsZero reports whether the IBAN is empty.
func (i IBAN) IsZero() bool {
	return i.value == ""
}

// Equal compares normalized values.
func (i IBAN) Equal(other IBAN) bool {
	return i.value == other.value
}

// IsValid reports whether the IBAN passes format, country and checksum checks.
func (i IBAN) IsValid() bool {
	return i.Validate() == nil
}

// Validate returns the reason the IBAN is invalid, or nil.
func (i IBAN) Validate() error {
	return DefaultRegistry().Validate(i)
}

// ExtractClearingNumber returns the bank clearing number, leading zeros included.
// It returns ErrInvalidArgument if the IBAN is not valid.
func (i IBAN) ExtractClearingNumber() (string, error) {
	return DefaultRegistry().ClearingNumber(i)
}

// ExtractClearingNumberWithoutLeadingZeros is ExtractClearingNumber with
// leading '0' characters removed. An all-zero field becomes "".
func (i IBAN) ExtractClearingNumberWithoutLeadingZeros() (string, error) {
	return DefaultRegistry().ClearingNumberWithoutLeadingZeros(i)
}

// CountryCode returns the first two characters, or "" for shorter values.
func (i IBAN) CountryCode() string {
	if len(i.value) < 2 {
		return ""
	}
	return i.value[:2]
}

// CheckDigits returns characters 3 and 4, or "" for shorter values.
func (i IBAN) CheckDigits() string {
	if len(i.value) < 4 {
		return ""
	}
	return i.value[2:4]
}

// BBAN returns the basic bank account number following the check digits.
func (i IBAN) BBAN() string {
	if len(i.value) < 4 {
		return ""
	}
	return i.value[4:]
}

// Country returns the default registry rule for the IBAN's country code.
func (i IBAN) Country() (CountryRule, bool) {
	return DefaultRegistry().Lookup(i.CountryCode())
}

// Format returns the print form: groups of four separated by single spaces.
func (i IBAN) Format() string {
	if len(i.value) <= 4 {
		return i.value
	}
	var b strings.Builder
	b.Grow(len(i.value) + len(i.value)/4)
	for n := 0; n < len(i.value); n += 4 {
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(i.value[n:min(n+4, len(i.value))])
	}
	return b.String()
}

// Masked hides everything except the country code, check digits and last four characters.
func (i IBAN) Masked() string {
	if len(i.value) <= 8 {
		return strings.Repeat("*", len(i.value))
	}
	return i.value[:4] + strings.Repeat("*", len(i.value)-8) + i.value[len(i.value)-4:]
}

// LogValue keeps full account numbers out of structured logs.
func (i IBAN) LogValue() slog.Value {
	return slog.StringValue(i.Masked())
}

// MarshalText implements encoding.TextMarshaler.
func (i IBAN) MarshalText() ([]byte, error) {
	return []byte(i.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The input is normalized, never rejected: validity is checked separately.
func (i *IBAN) UnmarshalText(text []byte) error {
	i.value = Normalize(string(text))
	return nil
}
