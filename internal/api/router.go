package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/ibankit/internal/metrics"
	"github.com/dmitrymomot/ibankit/pkg/clientip"
	"github.com/dmitrymomot/ibankit/pkg/httpserver"
	"github.com/dmitrymomot/ibankit/pkg/i18n"
	"github.com/dmitrymomot/ibankit/pkg/iban"
	"github.com/dmitrymomot/ibankit/pkg/logger"
	"github.com/dmitrymomot/ibankit/pkg/ratelimit"
	"github.com/dmitrymomot/ibankit/pkg/requestid"
)

var errEmptyRegistry = errors.New("country registry is empty")

// Options configures the API router. Registry, Translator and Metrics are required.
type Options struct {
	Registry   *iban.Registry
	Translator *i18n.Translator
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger

	// AllowedCountries restricts payee IBANs. Empty means any country.
	AllowedCountries []string

	// RateLimiter limits /v1 requests per client IP when set.
	RateLimiter *ratelimit.Limiter
	// TrustProxy makes the client IP come from forwarding headers.
	TrustProxy bool
}

type handler struct {
	registry   *iban.Registry
	translator *i18n.Translator
	metrics    *metrics.Metrics
	log        *slog.Logger
	allowed    []string
}

// NewRouter mounts the IBAN endpoints, health and metrics on a chi router.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	h := &handler{
		registry:   opts.Registry,
		translator: opts.Translator,
		metrics:    opts.Metrics,
		log:        log.With(logger.Component("api")),
		allowed:    opts.AllowedCountries,
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)
	r.Use(opts.Translator.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", http.StatusText(http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", httpserver.HealthCheckHandler(h.log, h.ready))
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(ratelimit.Middleware(opts.RateLimiter, func(r *http.Request) string {
				return clientip.FromRequest(r, opts.TrustProxy)
			}, http.HandlerFunc(tooManyRequests)))
		}
		r.Post("/iban/validate", h.validateIBAN)
		r.Get("/iban/{iban}", h.lookupIBAN)
		r.Post("/payees/validate", h.validatePayee)
		r.Get("/countries", h.listCountries)
	})

	return r
}

// observe logs and measures each request by route pattern.
// Raw paths are never logged: they may carry an IBAN.
func (h *handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.ObserveRequest(route, strconv.Itoa(status), start)
		h.log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", status),
			logger.Duration(time.Since(start)),
		)
	})
}
