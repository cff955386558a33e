package iban

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIBAN is the parent of every validation failure.
	ErrInvalidIBAN = errors.New("invalid IBAN")

	// ErrInvalidLength is returned when the IBAN is shorter than 5 or longer than 34 characters,
	// or does not match the length registered for its country.
	ErrInvalidLength = fmt.Errorf("%w: invalid length", ErrInvalidIBAN)

	// ErrInvalidCountryCode is returned when the first two characters are not an
	// upper-case ISO 3166 country code.
	ErrInvalidCountryCode = fmt.Errorf("%w: invalid country code", ErrInvalidIBAN)

	// ErrInvalidCheckDigits is returned when characters 3 and 4 are not decimal digits.
	ErrInvalidCheckDigits = fmt.Errorf("%w: invalid check digits", ErrInvalidIBAN)

	// ErrInvalidBBAN is returned when the basic bank account number does not match the country format.
	ErrInvalidBBAN = fmt.Errorf("%w: invalid basic bank account number", ErrInvalidIBAN)

	// ErrInvalidChecksum is returned when the MOD 97-10 checksum does not hold.
	ErrInvalidChecksum = fmt.Errorf("%w: checksum mismatch", ErrInvalidIBAN)

	// ErrInvalidArgument is returned when clearing number extraction is called on an invalid IBAN.
	// Callers are expected to check IsValid first.
	ErrInvalidArgument = errors.New("invalid argument: IBAN is not valid")

	// ErrClearingNumberUnavailable is returned for valid IBANs of countries without a registered clearing field.
	ErrClearingNumberUnavailable = errors.New("clearing number position is not registered for country")

	// ErrInvalidRule is returned when a country rule is inconsistent.
	ErrInvalidRule = errors.New("invalid country rule")

	// ErrParsingRegistry is returned when a registry document cannot be decoded.
	ErrParsingRegistry = errors.New("failed to parse country registry")
)
