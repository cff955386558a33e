package logger

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/ibankit/pkg/iban"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// IBAN records a masked IBAN under the key "iban". Full account numbers never reach the log.
func IBAN(i iban.IBAN) slog.Attr {
	return slog.String("iban", i.Masked())
}

// Country records the IBAN country code under the key "country".
func Country(code string) slog.Attr {
	return slog.String("country", code)
}

// Valid records a validation outcome under the key "valid".
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
