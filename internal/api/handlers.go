package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ibankit/pkg/binder"
	"github.com/dmitrymomot/ibankit/pkg/i18n"
	"github.com/dmitrymomot/ibankit/pkg/iban"
	"github.com/dmitrymomot/ibankit/pkg/logger"
	"github.com/dmitrymomot/ibankit/pkg/validator"
)

const maxHolderLength = 70

// Report describes one checked IBAN.
type Report struct {
	Valid                 bool    `json:"valid"`
	IBAN                  string  `json:"iban"`
	Reason                string  `json:"reason,omitempty"`
	Formatted             string  `json:"formatted,omitempty"`
	CountryCode           string  `json:"country_code,omitempty"`
	Country               string  `json:"country,omitempty"`
	ClearingNumber        *string `json:"clearing_number,omitempty"`
	ClearingNumberTrimmed *string `json:"clearing_number_trimmed,omitempty"`
}

// Country is the public view of a registry entry.
type Country struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Length         int    `json:"length"`
	Format         string `json:"format"`
	ClearingOffset int    `json:"clearing_offset,omitempty"`
	ClearingLength int    `json:"clearing_length,omitempty"`
}

type validateIBANRequest struct {
	IBAN *iban.IBAN `json:"iban"`
}

type validatePayeeRequest struct {
	Holder string     `json:"holder"`
	IBAN   *iban.IBAN `json:"iban"`
}

func (req validatePayeeRequest) rules(reg *iban.Registry, allowed []string) []validator.Rule {
	rules := []validator.Rule{
		validator.RequiredString("holder", req.Holder),
		validator.MaxLenString("holder", req.Holder, maxHolderLength),
		validator.ValidIBANIn("iban", req.IBAN, reg),
	}
	if len(allowed) > 0 {
		rules = append(rules, validator.IBANCountry("iban", req.IBAN, allowed...))
	}
	return rules
}

func (h *handler) ready() error {
	if h.registry.Len() == 0 {
		return errEmptyRegistry
	}
	return nil
}

func (h *handler) validateIBAN(w http.ResponseWriter, r *http.Request) {
	var req validateIBANRequest
	if err := binder.JSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := validator.Apply(validator.RequiredIBAN("iban", req.IBAN)); err != nil {
		h.validationFailed(w, r, nil, err)
		return
	}

	rep, err := h.check(r, *req.IBAN)
	if err != nil {
		h.validationFailed(w, r, rep, validator.Apply(validator.ValidIBANIn("iban", req.IBAN, h.registry)))
		return
	}
	writeJSON(w, http.StatusOK, Response{Code: "iban_valid", Data: rep})
}

func (h *handler) lookupIBAN(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the parameter escaped.
	raw := chi.URLParam(r, "iban")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		raw = unescaped
	}
	value := iban.New(raw)

	rep, err := h.check(r, value)
	if err != nil {
		h.validationFailed(w, r, rep, validator.Apply(validator.ValidIBANIn("iban", &value, h.registry)))
		return
	}
	writeJSON(w, http.StatusOK, Response{Code: "iban_valid", Data: rep})
}

func (h *handler) validatePayee(w http.ResponseWriter, r *http.Request) {
	var req validatePayeeRequest
	if err := binder.JSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := validator.Apply(req.rules(h.registry, h.allowed)...); err != nil {
		if req.IBAN != nil {
			h.metrics.ObserveCheck(h.countryLabel(*req.IBAN), h.registry.Validate(*req.IBAN) == nil)
		}
		h.validationFailed(w, r, nil, err)
		return
	}

	var rep *Report
	if req.IBAN != nil {
		rep, _ = h.check(r, *req.IBAN)
	}
	writeJSON(w, http.StatusOK, Response{Code: "payee_valid", Data: map[string]any{
		"holder": req.Holder,
		"iban":   rep,
	}})
}

func (h *handler) listCountries(w http.ResponseWriter, _ *http.Request) {
	rules := h.registry.Countries()
	out := make([]Country, 0, len(rules))
	for _, rule := range rules {
		out = append(out, Country{
			Code:           rule.Code,
			Name:           rule.Name,
			Length:         rule.Length,
			Format:         rule.Format,
			ClearingOffset: rule.ClearingOffset,
			ClearingLength: rule.ClearingLength,
		})
	}
	writeJSON(w, http.StatusOK, Response{Code: "countries", Data: out})
}

// check validates value, records metrics and builds the report.
// The report is returned for invalid input too.
func (h *handler) check(r *http.Request, value iban.IBAN) (*Report, error) {
	rep := &Report{IBAN: value.Masked()}
	err := h.registry.Validate(value)
	h.metrics.ObserveCheck(h.countryLabel(value), err == nil)

	if err != nil {
		rep.Reason = reason(err)
		h.log.DebugContext(r.Context(), "iban rejected", logger.IBAN(value), logger.Error(err))
		return rep, err
	}

	rep.Valid = true
	rep.IBAN = value.String()
	rep.Formatted = value.Format()
	rep.CountryCode = value.CountryCode()
	if rule, ok := h.registry.Lookup(value.CountryCode()); ok {
		rep.Country = rule.Name
	}

	full, err := h.registry.ClearingNumber(value)
	switch {
	case err == nil:
		trimmed, _ := h.registry.ClearingNumberWithoutLeadingZeros(value)
		rep.ClearingNumber = &full
		rep.ClearingNumberTrimmed = &trimmed
		h.metrics.ObserveExtraction("ok")
	case errors.Is(err, iban.ErrClearingNumberUnavailable):
		h.metrics.ObserveExtraction("unavailable")
	default:
		h.metrics.ObserveExtraction("invalid")
		h.log.WarnContext(r.Context(), "clearing number extraction failed", logger.IBAN(value), logger.Error(err))
	}
	return rep, nil
}

// countryLabel keeps metric cardinality bounded to registered countries.
func (h *handler) countryLabel(value iban.IBAN) string {
	if _, ok := h.registry.Lookup(value.CountryCode()); ok {
		return value.CountryCode()
	}
	return "other"
}

func (h *handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.log.DebugContext(r.Context(), "malformed request", logger.Error(err))

	status := http.StatusBadRequest
	code := "bad_request"
	if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
		status = http.StatusUnsupportedMediaType
		code = "unsupported_media_type"
	}
	writeError(w, status, code, err.Error())
}

func (h *handler) validationFailed(w http.ResponseWriter, r *http.Request, rep *Report, err error) {
	lang := i18n.LangFromContext(r.Context())
	details := make(map[string][]string)
	for _, ve := range validator.ExtractValidationErrors(err) {
		details[ve.Field] = append(details[ve.Field], h.translator.T(lang, ve.TranslationKey, ve.TranslationValues))
	}

	body := Response{
		Code: "validation_error",
		Error: &ErrorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Details: details,
		},
	}
	if rep != nil {
		body.Data = rep
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func reason(err error) string {
	switch {
	case errors.Is(err, iban.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, iban.ErrInvalidCountryCode):
		return "invalid_country_code"
	case errors.Is(err, iban.ErrInvalidCheckDigits):
		return "invalid_check_digits"
	case errors.Is(err, iban.ErrInvalidBBAN):
		return "invalid_bban"
	case errors.Is(err, iban.ErrInvalidChecksum):
		return "invalid_checksum"
	default:
		return "invalid"
	}
}
