// Package metrics provides Prometheus metrics for the rating pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Population metrics
	playersLoaded   prometheus.Counter
	playersExcluded prometheus.Counter
	playersRated    prometheus.Counter
	populationSize  prometheus.Gauge

	// Stage timings
	stageDuration *prometheus.HistogramVec

	// Quality metrics
	pipelineRuns   prometheus.Counter
	pipelineErrors prometheus.Counter
	storeErrors    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fod",
		subsystem:        "ratings",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.playersLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_loaded_total",
		Help:      "Total number of season aggregates loaded from the store",
	})

	m.playersExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_excluded_total",
		Help:      "Total number of players skipped for having zero minutes",
	})

	m.playersRated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_rated_total",
		Help:      "Total number of players with computed attribute vectors",
	})

	m.populationSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "population_size",
		Help:      "Size of the last rated population",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_runs_total",
		Help:      "Total number of completed pipeline runs",
	})

	m.pipelineErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_errors_total",
		Help:      "Total number of failed pipeline runs",
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of store read/write errors",
	})
}

// Global helper functions using the singleton manager.

// AddPlayersLoaded records season aggregates read from the store.
func AddPlayersLoaded(n int) {
	globalManager.playersLoaded.Add(float64(n))
}

// AddPlayersExcluded records players skipped for zero minutes.
func AddPlayersExcluded(n int) {
	globalManager.playersExcluded.Add(float64(n))
}

// AddPlayersRated records players that received attribute vectors.
func AddPlayersRated(n int) {
	globalManager.playersRated.Add(float64(n))
}

// UpdatePopulationSize sets the size of the last rated population.
func UpdatePopulationSize(n int) {
	globalManager.populationSize.Set(float64(n))
}

// ObserveStageDuration records how long a pipeline stage took.
func ObserveStageDuration(stage string, seconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordPipelineRun counts a completed run.
func RecordPipelineRun() {
	globalManager.pipelineRuns.Inc()
}

// RecordPipelineError counts a failed run.
func RecordPipelineError() {
	globalManager.pipelineErrors.Inc()
}

// RecordStoreError counts a store read/write failure.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// GetRegistry returns the custom registry for serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
