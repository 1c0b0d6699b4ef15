package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "litintel"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewMetricsCollectorRequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestRegisterCounterAndExposition(t *testing.T) {
	c := newTestCollector(t)

	counter := c.RegisterCounter("analyses_total", "Completed analyses", "practice_area", "momentum_state")
	counter.WithLabelValues("housing_disrepair", "strong").Inc()
	counter.WithLabelValues("housing_disrepair", "strong").Add(2)

	body := scrape(t, c)
	assert.Contains(t, body, "litintel_analyses_total")
	assert.Contains(t, body, `momentum_state="strong"`)
}

func TestRegisterIsIdempotentPerName(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("rule_reloads_total", "Reloads", "status")
	second := c.RegisterCounter("rule_reloads_total", "Reloads", "status")

	first.WithLabelValues("ok").Inc()
	second.WithLabelValues("ok").Inc()

	// Both handles feed the same underlying metric.
	assert.Contains(t, scrape(t, c), `litintel_rule_reloads_total{status="ok"} 2`)
}

func TestTypeCollisionYieldsNoop(t *testing.T) {
	c := newTestCollector(t)

	c.RegisterCounter("mixed_metric", "first registration", "l")
	g := c.RegisterGauge("mixed_metric", "second registration with another type", "l")

	assert.NotPanics(t, func() {
		g.WithLabelValues("x").Set(1)
		g.WithLabelValues("x").Inc()
	})
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)

	gauge := c.RegisterGauge("queue_depth", "Depth", "queue")
	gauge.WithLabelValues("analysis").Set(3)
	gauge.WithLabelValues("analysis").Dec()

	hist := c.RegisterHistogram("analysis_duration_seconds", "Duration", AnalysisDurationBuckets, "practice_area")
	hist.WithLabelValues("clinical_negligence").Observe(0.4)

	body := scrape(t, c)
	assert.Contains(t, body, `litintel_queue_depth{queue="analysis"} 2`)
	assert.Contains(t, body, "litintel_analysis_duration_seconds_bucket")
}

func TestTimerObservesIntoHistogram(t *testing.T) {
	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_op_seconds", "Timed", nil, "op")

	timer := NewTimer(hist.WithLabelValues("analyze"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	assert.Contains(t, scrape(t, c), `litintel_timed_op_seconds_count{op="analyze"} 1`)
}

func TestTimerNilHistogram(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTimer(nil).ObserveDuration()
	})
}
