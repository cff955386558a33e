package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for IBAN checks served by the API.
type Metrics struct {
	Checks          *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ibankit_iban_checks_total",
			Help: "IBAN validations by outcome and country",
		}, []string{"outcome", "country"}),
		Extractions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ibankit_clearing_extractions_total",
			Help: "Clearing number extractions by outcome",
		}, []string{"outcome"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ibankit_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "status"}),
	}
}

// ObserveCheck records one validation. country should be a registered code
// or "other" to keep label cardinality bounded.
func (m *Metrics) ObserveCheck(country string, valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.Checks.WithLabelValues(outcome, country).Inc()
}

// ObserveExtraction records a clearing number extraction: "ok", "invalid" or "unavailable".
func (m *Metrics) ObserveExtraction(outcome string) {
	m.Extractions.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the duration of a request. Call with time.Now() at the start.
func (m *Metrics) ObserveRequest(route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}
