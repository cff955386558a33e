// Package validator provides a small, reflection-free validation framework
// and the field rules used for payment records, most notably IBAN fields.
//
// A Rule binds a boolean Check to a named field and carries the
// translation-friendly ValidationError reported when the check fails. Apply
// evaluates rules and aggregates failures into ValidationErrors, which
// implements error. The framework drives iteration; rules never panic or
// return errors for invalid input.
//
// # IBAN fields
//
// IsAcceptableIBAN is the field predicate: a nil IBAN is acceptable (absence
// is the business of RequiredIBAN) and a present one must be valid.
//
//	err := validator.Apply(
//	    validator.RequiredString("holder", p.Holder),
//	    validator.ValidIBAN("iban", p.IBAN),
//	    validator.IBANCountry("iban", p.IBAN, "CH", "LI"),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.Has("iban") {
//	    // show verrs.Get("iban") next to the field
//	}
//
// Records may implement Validatable and be checked with Validate.
//
// # Custom rules
//
// Field turns any Predicate into a Rule:
//
//	validator.Field("bic", bic, isBIC, validator.ValidationError{
//	    Message:        "must be a valid BIC",
//	    TranslationKey: "validation.bic",
//	})
package validator
