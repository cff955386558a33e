package iban

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	minLength = 5
	maxLength = 34
)

// mod97 computes the ISO 7064 MOD 97-10 remainder of s, where every letter
// is expanded to its two-digit code (A=10 ... Z=35) before the digit string
// is read as a decimal number. s must hold only 0-9 and A-Z.
func mod97(s string) int {
	r := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c):
			r = (r*10 + int(c-'0')) % 97
		case isUpper(c):
			r = (r*100 + int(c-'A') + 10) % 97
		}
	}
	return r
}

// CheckDigitsFor computes the two check digits for a country code and BBAN.
func CheckDigitsFor(countryCode, bban string) (string, error) {
	if !isCountryCode(countryCode) {
		return "", ErrInvalidCountryCode
	}
	bban = Normalize(bban)
	if bban == "" || !isAlphanumeric(bban) {
		return "", ErrInvalidBBAN
	}
	return fmt.Sprintf("%02d", 98-mod97(bban+countryCode+"00")), nil
}

// Build assembles an IBAN from a country code and BBAN, computing the check digits.
// The result is not checked against the country rules.
func Build(countryCode, bban string) (IBAN, error) {
	digits, err := CheckDigitsFor(countryCode, bban)
	if err != nil {
		return IBAN{}, err
	}
	return New(countryCode + digits + bban), nil
}

// isCountryCode accepts two upper-case letters naming an ISO 3166 country.
// Private-use and group codes are rejected, except XK (Kosovo).
func isCountryCode(cc string) bool {
	if len(cc) != 2 || !isUpper(cc[0]) || !isUpper(cc[1]) {
		return false
	}
	region, err := language.ParseRegion(cc)
	return err == nil && region.IsCountry()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isAlphanumeric(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9') && !(r >= 'A' && r <= 'Z')
	}) < 0
}
