// Package iban provides an immutable IBAN value type with structural and
// ISO 7064 MOD 97-10 checksum validation, plus extraction of the bank
// clearing number for countries whose layout is registered.
//
// # Validation
//
// Input is normalized by removing all whitespace, so "CH39 0900 0000 3066
// 3817 2" and "CH3909000000306638172" are the same IBAN. Case is preserved:
// lower-case input is not upper-cased and therefore fails validation.
//
// A value is valid when, in order:
//
//   - its length is between 5 and 34 characters;
//   - it starts with an upper-case ISO 3166 country code followed by two
//     digits (private-use codes such as AA or ZZ are rejected, XK is accepted);
//   - the BBAN matches the registered country format and length, or, for
//     countries missing from the registry, consists of upper-case letters
//     and digits;
//   - the MOD 97-10 checksum holds.
//
// Validation never returns an error for a well-formed call: IsValid is a
// boolean predicate and Validate reports which step failed. Only the
// clearing number extractors signal misuse, with ErrInvalidArgument, when
// called on an IBAN that is not valid.
//
// # Usage
//
//	i := iban.New("CH39 0900 0000 3066 3817 2")
//	if !i.IsValid() {
//	    return errInvalidAccount
//	}
//	cn, _ := i.ExtractClearingNumber()                     // "09000"
//	short, _ := i.ExtractClearingNumberWithoutLeadingZeros() // "9000"
//
// # Country registry
//
// Country rules (length, BBAN format, clearing number position) live in a
// Registry. The default one is embedded from countries.yaml; custom
// registries can be loaded with LoadRegistry or derived with Registry.With.
// Registries are immutable and safe for concurrent use.
package iban
