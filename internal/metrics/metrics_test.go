package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ibankit/internal/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveCheck("CH", true)
	m.ObserveCheck("CH", true)
	m.ObserveCheck("other", false)
	m.ObserveExtraction("ok")
	m.ObserveRequest("/v1/iban/{iban}", "200", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Checks.WithLabelValues("valid", "CH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("invalid", "other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	assert.Panics(t, func() { metrics.New(reg) }, "duplicate registration")
}
