package cli

import (
	"github.com/dmitrymomot/ibankit/pkg/httpserver"
	"github.com/dmitrymomot/ibankit/pkg/ratelimit"
)

// Config is read from the environment and optional .env file.
type Config struct {
	Env              string   `env:"APP_ENV" envDefault:"development"`
	LogLevel         string   `env:"LOG_LEVEL"`
	RegistryFile     string   `env:"IBAN_REGISTRY_FILE"`
	AllowedCountries []string `env:"IBAN_ALLOWED_COUNTRIES" envSeparator:","`

	// TrustProxy takes the client IP for rate limiting from forwarding headers.
	TrustProxy bool `env:"HTTP_TRUST_PROXY"`

	HTTP      httpserver.Config
	RateLimit ratelimit.Config
}
