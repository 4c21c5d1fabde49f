// Package metrics provides Prometheus instrumentation for the pocsift pipeline.
//
// The pipeline is a one-shot batch run with no network surface, so nothing
// is served over HTTP; counters accumulate on a custom registry and the
// pipeline gathers them into an end-of-run summary log line.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Pipeline stage label values.
const (
	StageRead      = "read"
	StageAggregate = "aggregate"
	StageSort      = "sort"
	StageWrite     = "write"
)

// Manager owns all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Row accounting
	rowsExtracted prometheus.Counter
	rowsAccepted  prometheus.Counter
	rowsRejected  prometheus.Counter

	// Aggregation quality
	duplicatesMerged prometheus.Counter
	uniquePOCs       prometheus.Gauge

	// Timings
	stageDuration *prometheus.HistogramVec
	runDuration   prometheus.Histogram

	// Run accounting
	runsTotal *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry so default Go runtime metrics stay out of the summary.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // backing registry for the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pocsift",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_extracted_total",
		Help:      "Total contact rows extracted from input",
	})

	m.rowsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_accepted_total",
		Help:      "Total rows whose name passed normalization",
	})

	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Total rows dropped by name normalization",
	})

	m.duplicatesMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_merged_total",
		Help:      "Total rows folded into an already-seen point of contact",
	})

	m.uniquePOCs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unique_pocs",
		Help:      "Unique points of contact produced by the last run",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Histogram of per-stage pipeline durations",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of full pipeline run durations",
		Buckets:   m.histogramBuckets,
	})

	m.runsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total pipeline runs by outcome",
	}, []string{"status"})
}

// RecordRowExtracted counts one contact row pulled from input.
func (m *Manager) RecordRowExtracted() {
	if m.enabled {
		m.rowsExtracted.Inc()
	}
}

// RecordRowAccepted counts one row that passed name normalization.
func (m *Manager) RecordRowAccepted() {
	if m.enabled {
		m.rowsAccepted.Inc()
	}
}

// RecordRowRejected counts one row dropped by name normalization.
func (m *Manager) RecordRowRejected() {
	if m.enabled {
		m.rowsRejected.Inc()
	}
}

// RecordDuplicateMerged counts one row merged into an existing POC.
func (m *Manager) RecordDuplicateMerged() {
	if m.enabled {
		m.duplicatesMerged.Inc()
	}
}

// UpdateUniquePOCs sets the unique POC gauge.
func (m *Manager) UpdateUniquePOCs(n int) {
	if m.enabled {
		m.uniquePOCs.Set(float64(n))
	}
}

// ObserveStageDuration records the duration of one pipeline stage.
func (m *Manager) ObserveStageDuration(stage string, d time.Duration) {
	if m.enabled {
		m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveRunDuration records the duration of a full run.
func (m *Manager) ObserveRunDuration(d time.Duration) {
	if m.enabled {
		m.runDuration.Observe(d.Seconds())
	}
}

// RecordRun counts one completed run with the given outcome ("ok"/"error").
func (m *Manager) RecordRun(status string) {
	if m.enabled {
		m.runsTotal.WithLabelValues(status).Inc()
	}
}

// Gather returns the current metric families from the manager's registry.
func (m *Manager) Gather() ([]*dto.MetricFamily, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, ErrGatherFailed
	}
	return families, nil
}

// Package-level helpers on the global manager.

func RecordRowExtracted()    { globalManager.RecordRowExtracted() }
func RecordRowAccepted()     { globalManager.RecordRowAccepted() }
func RecordRowRejected()     { globalManager.RecordRowRejected() }
func RecordDuplicateMerged() { globalManager.RecordDuplicateMerged() }
func UpdateUniquePOCs(n int) { globalManager.UpdateUniquePOCs(n) }

func ObserveStageDuration(stage string, d time.Duration) {
	globalManager.ObserveStageDuration(stage, d)
}
func ObserveRunDuration(d time.Duration) { globalManager.ObserveRunDuration(d) }
func RecordRun(status string)            { globalManager.RecordRun(status) }

// Default returns the global metrics manager.
func Default() *Manager { return globalManager }
