package prometheus

import (
	"time"
)

// EngineMetrics holds every metric the analysis pipeline emits.  Register
// once at startup via NewEngineMetrics and inject where needed; a nil
// *EngineMetrics is accepted by all helpers so metrics stay optional in
// tests and one-shot CLI runs.
type EngineMetrics struct {
	// Analysis pipeline
	AnalysesTotal    CounterVec // practice_area, momentum_state
	AnalysisDuration HistogramVec
	DegradedSignals  CounterVec // signal
	DetectorDuration HistogramVec

	// Snapshot / delta lifecycle
	SnapshotWrites CounterVec // status
	DeltasComputed CounterVec // first_analysis

	// Rule table
	RuleReloads CounterVec // status

	// Infrastructure
	DBQueryDuration HistogramVec // operation
	CacheHits       CounterVec   // cache
	CacheMisses     CounterVec   // cache
	TextHydrations  CounterVec   // status
	EventsPublished CounterVec   // topic, status
	EventsConsumed  CounterVec   // topic, status
}

var (
	// AnalysisDurationBuckets covers the expected full-analysis range: most
	// runs land under a second, document-heavy cases run to tens of seconds.
	AnalysisDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

	// DBDurationBuckets covers single-query latencies.
	DBDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewEngineMetrics registers the full metric set against the collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	return &EngineMetrics{
		AnalysesTotal: collector.RegisterCounter("analyses_total",
			"Completed case analyses", "practice_area", "momentum_state"),
		AnalysisDuration: collector.RegisterHistogram("analysis_duration_seconds",
			"End-to-end analysis duration", AnalysisDurationBuckets, "practice_area"),
		DegradedSignals: collector.RegisterCounter("degraded_signals_total",
			"Collaborator failures absorbed by fail-soft boundaries", "signal"),
		DetectorDuration: collector.RegisterHistogram("detector_duration_seconds",
			"Per-detector execution duration", DBDurationBuckets, "detector"),

		SnapshotWrites: collector.RegisterCounter("snapshot_writes_total",
			"Analysis snapshot persistence attempts", "status"),
		DeltasComputed: collector.RegisterCounter("deltas_computed_total",
			"Analysis deltas computed", "first_analysis"),

		RuleReloads: collector.RegisterCounter("rule_reloads_total",
			"Rule table hot-reload attempts", "status"),

		DBQueryDuration: collector.RegisterHistogram("db_query_duration_seconds",
			"Database query duration", DBDurationBuckets, "operation"),
		CacheHits: collector.RegisterCounter("cache_hits_total",
			"Cache hits", "cache"),
		CacheMisses: collector.RegisterCounter("cache_misses_total",
			"Cache misses", "cache"),
		TextHydrations: collector.RegisterCounter("text_hydrations_total",
			"Document text hydrations from object storage", "status"),
		EventsPublished: collector.RegisterCounter("events_published_total",
			"Analysis events published to the bus", "topic", "status"),
		EventsConsumed: collector.RegisterCounter("events_consumed_total",
			"Analysis events consumed from the bus", "topic", "status"),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Nil-safe recording helpers
// ─────────────────────────────────────────────────────────────────────────────

// ObserveAnalysis records one completed analysis.
func (m *EngineMetrics) ObserveAnalysis(practiceArea, momentumState string, d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(practiceArea, momentumState).Inc()
	m.AnalysisDuration.WithLabelValues(practiceArea).Observe(d.Seconds())
}

// RecordDegradedSignal counts one absorbed collaborator failure.
func (m *EngineMetrics) RecordDegradedSignal(signal string) {
	if m == nil {
		return
	}
	m.DegradedSignals.WithLabelValues(signal).Inc()
}

// ObserveDetector records one detector pass.
func (m *EngineMetrics) ObserveDetector(detector string, d time.Duration) {
	if m == nil {
		return
	}
	m.DetectorDuration.WithLabelValues(detector).Observe(d.Seconds())
}

// RecordSnapshotWrite counts one snapshot persistence attempt.
func (m *EngineMetrics) RecordSnapshotWrite(err error) {
	if m == nil {
		return
	}
	m.SnapshotWrites.WithLabelValues(statusLabel(err)).Inc()
}

// RecordDelta counts one computed delta.
func (m *EngineMetrics) RecordDelta(firstAnalysis bool) {
	if m == nil {
		return
	}
	label := "false"
	if firstAnalysis {
		label = "true"
	}
	m.DeltasComputed.WithLabelValues(label).Inc()
}

// RecordRuleReload counts one rule-table reload attempt.
func (m *EngineMetrics) RecordRuleReload(err error) {
	if m == nil {
		return
	}
	m.RuleReloads.WithLabelValues(statusLabel(err)).Inc()
}

// ObserveDBQuery records one database query.
func (m *EngineMetrics) ObserveDBQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordCacheAccess counts one cache lookup.
func (m *EngineMetrics) RecordCacheAccess(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMisses.WithLabelValues(cache).Inc()
}

// RecordTextHydration counts one object-store text fetch.
func (m *EngineMetrics) RecordTextHydration(err error) {
	if m == nil {
		return
	}
	m.TextHydrations.WithLabelValues(statusLabel(err)).Inc()
}

// RecordEventPublished counts one bus publish attempt.
func (m *EngineMetrics) RecordEventPublished(topic string, err error) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(topic, statusLabel(err)).Inc()
}

// RecordEventConsumed counts one bus message handled.
func (m *EngineMetrics) RecordEventConsumed(topic string, err error) {
	if m == nil {
		return
	}
	m.EventsConsumed.WithLabelValues(topic, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
