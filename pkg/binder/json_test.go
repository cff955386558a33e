package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ibankit/pkg/binder"
	"github.com/dmitrymomot/ibankit/pkg/iban"
)

type validateRequest struct {
	IBAN iban.IBAN `json:"iban"`
}

func newRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes and normalizes IBAN", func(t *testing.T) {
		t.Parallel()
		var req validateRequest
		require.NoError(t, binder.JSON(newRequest(`{"iban":"CH39 0900 0000 3066 3817 2"}`, "application/json; charset=utf-8"), &req))
		assert.Equal(t, "CH3909000000306638172", req.IBAN.String())
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		err         error
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", binder.ErrUnsupportedMediaType},
		{"empty body", ``, "application/json", binder.ErrFailedToParseJSON},
		{"malformed", `{"iban":`, "application/json", binder.ErrFailedToParseJSON},
		{"unknown field", `{"iban":"x","bic":"y"}`, "application/json", binder.ErrFailedToParseJSON},
		{"wrong type", `{"iban":42}`, "application/json", binder.ErrFailedToParseJSON},
		{"trailing data", `{"iban":"x"}{"iban":"y"}`, "application/json", binder.ErrFailedToParseJSON},
		{"too large", `{"iban":"` + strings.Repeat("1", binder.DefaultMaxJSONSize) + `"}`, "application/json", binder.ErrFailedToParseJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req validateRequest
			assert.ErrorIs(t, binder.JSON(newRequest(tt.body, tt.contentType), &req), tt.err)
		})
	}
}
