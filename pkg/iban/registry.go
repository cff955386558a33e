package iban

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := LoadRegistry(bytes.NewReader(countriesYAML))
	if err != nil {
		panic(fmt.Sprintf("iban: embedded country registry: %v", err))
	}
	return reg
})

// DefaultRegistry returns the registry embedded in the package.
// It is used by the IBAN methods.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// CountryRule describes the national part of an IBAN for one country.
type CountryRule struct {
	Code           string `yaml:"code"`
	Name           string `yaml:"name"`
	Length         int    `yaml:"length"`
	Format         string `yaml:"format"`
	ClearingOffset int    `yaml:"clearing_offset"`
	ClearingLength int    `yaml:"clearing_length"`

	segments []segment
}

// HasClearingNumber reports whether the rule locates a clearing number field.
func (r CountryRule) HasClearingNumber() bool {
	return r.ClearingLength > 0
}

type segment struct {
	count int
	kind  byte
}

// compile parses the format and checks the rule against itself.
func (r CountryRule) compile() (CountryRule, error) {
	if !isCountryCode(r.Code) {
		return r, fmt.Errorf("%w: country code %q", ErrInvalidRule, r.Code)
	}
	if r.Length < minLength || r.Length > maxLength {
		return r, fmt.Errorf("%w: %s: length %d out of range", ErrInvalidRule, r.Code, r.Length)
	}

	segments, err := parseFormat(r.Format)
	if err != nil {
		return r, fmt.Errorf("%w: %s: %w", ErrInvalidRule, r.Code, err)
	}
	total := 0
	for _, s := range segments {
		total += s.count
	}
	if total != r.Length-4 {
		return r, fmt.Errorf("%w: %s: format %q describes %d characters, want %d",
			ErrInvalidRule, r.Code, r.Format, total, r.Length-4)
	}

	if r.ClearingOffset < 0 || r.ClearingLength < 0 || r.ClearingOffset+r.ClearingLength > total {
		return r, fmt.Errorf("%w: %s: clearing field [%d:%d] outside BBAN",
			ErrInvalidRule, r.Code, r.ClearingOffset, r.ClearingOffset+r.ClearingLength)
	}

	r.segments = segments
	return r, nil
}

// parseFormat parses registry notation such as "5n12c".
func parseFormat(format string) ([]segment, error) {
	if format == "" {
		return nil, errors.New("empty format")
	}
	var segments []segment
	count := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case isDigit(c):
			count = count*10 + int(c-'0')
		case c == 'n' || c == 'a' || c == 'c':
			if count == 0 {
				return nil, fmt.Errorf("format %q: missing count before %q", format, c)
			}
			segments = append(segments, segment{count: count, kind: c})
			count = 0
		default:
			return nil, fmt.Errorf("format %q: unexpected character %q", format, c)
		}
	}
	if count != 0 {
		return nil, fmt.Errorf("format %q: trailing count without type", format)
	}
	return segments, nil
}

// matches reports whether bban follows the rule's format.
func (r CountryRule) matches(bban string) bool {
	pos := 0
	for _, s := range r.segments {
		if pos+s.count > len(bban) {
			return false
		}
		for _, c := range []byte(bban[pos : pos+s.count]) {
			switch s.kind {
			case 'n':
				if !isDigit(c) {
					return false
				}
			case 'a':
				if !isUpper(c) {
					return false
				}
			case 'c':
				if !isDigit(c) && !isUpper(c) {
					return false
				}
			}
		}
		pos += s.count
	}
	return pos == len(bban)
}

// Registry is an immutable set of country rules keyed by country code.
// It is safe for concurrent use.
type Registry struct {
	rules map[string]CountryRule
}

// NewRegistry builds a registry from rules. Later rules replace earlier ones with the same code.
func NewRegistry(rules ...CountryRule) (*Registry, error) {
	reg := &Registry{rules: make(map[string]CountryRule, len(rules))}
	for _, rule := range rules {
		compiled, err := rule.compile()
		if err != nil {
			return nil, err
		}
		reg.rules[compiled.Code] = compiled
	}
	return reg, nil
}

type registryDocument struct {
	Countries []CountryRule `yaml:"countries"`
}

// LoadRegistry decodes a YAML document with a top-level "countries" list.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var doc registryDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrParsingRegistry, err)
	}
	return NewRegistry(doc.Countries...)
}

// With returns a copy of the registry extended with rules.
// The receiver is left untouched.
func (r *Registry) With(rules ...CountryRule) (*Registry, error) {
	ext, err := NewRegistry(rules...)
	if err != nil {
		return nil, err
	}
	merged := maps.Clone(r.rules)
	if merged == nil {
		merged = make(map[string]CountryRule, len(ext.rules))
	}
	maps.Copy(merged, ext.rules)
	return &Registry{rules: merged}, nil
}

// Lookup returns the rule registered for a country code.
func (r *Registry) Lookup(code string) (CountryRule, bool) {
	rule, ok := r.rules[code]
	return rule, ok
}

// Countries returns all rules ordered by country code.
func (r *Registry) Countries() []CountryRule {
	return slices.SortedFunc(maps.Values(r.rules), func(a, b CountryRule) int {
		return strings.Compare(a.Code, b.Code)
	})
}

// Len returns the number of registered countries.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Validate checks an IBAN against the registry and reports the first failing step.
func (r *Registry) Validate(i IBAN) error {
	v := i.value
	if len(v) < minLength || len(v) > maxLength {
		return ErrInvalidLength
	}
	if !isCountryCode(v[:2]) {
		return ErrInvalidCountryCode
	}
	if !isDigit(v[2]) || !isDigit(v[3]) {
		return ErrInvalidCheckDigits
	}

	bban := v[4:]
	if rule, ok := r.rules[v[:2]]; ok {
		if len(v) != rule.Length {
			return ErrInvalidLength
		}
		if !rule.matches(bban) {
			return ErrInvalidBBAN
		}
	} else if !isAlphanumeric(bban) {
		return ErrInvalidBBAN
	}

	if mod97(bban+v[:4]) != 1 {
		return ErrInvalidChecksum
	}
	return nil
}

// ClearingNumber returns the clearing number field of a valid IBAN, leading zeros included.
// It fails with ErrInvalidArgument when the IBAN does not pass Validate.
func (r *Registry) ClearingNumber(i IBAN) (string, error) {
	if err := r.Validate(i); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	rule, ok := r.rules[i.CountryCode()]
	if !ok || !rule.HasClearingNumber() {
		return "", fmt.Errorf("%w: %s", ErrClearingNumberUnavailable, i.CountryCode())
	}

	start := 4 + rule.ClearingOffset
	return i.value[start : start+rule.ClearingLength], nil
}

// ClearingNumberWithoutLeadingZeros is ClearingNumber with leading '0'
// characters removed. An all-zero field yields "".
func (r *Registry) ClearingNumberWithoutLeadingZeros(i IBAN) (string, error) {
	cn, err := r.ClearingNumber(i)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(cn, "0"), nil
}
