// Package metrics provides Prometheus metrics for the roboscout analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the roboscout service.
type Manager struct {
	namespace          string
	subsystem          string
	latencyBuckets     []float64
	probabilityBuckets []float64
	enabled            bool
	constLabels        map[string]string
	registry           prometheus.Registerer

	// Analysis metrics
	analysisRuns       prometheus.Counter
	analysisLatency    prometheus.Histogram
	teamsAnalyzed      prometheus.Gauge
	advancedTeams      prometheus.Gauge
	fixtureLoadLatency prometheus.Histogram

	// Catalog metrics
	eventsIngested       prometheus.Counter
	eventsTotal          prometheus.Gauge
	observationsRecorded prometheus.Counter
	observationsReplaced prometheus.Counter
	observationsTotal    prometheus.Gauge
	inspectionsTotal     prometheus.Gauge
	catalogQueryLatency  prometheus.Histogram

	// Projection metrics
	projectionsComputed prometheus.Counter
	simulations         prometheus.Counter
	winProbability      prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:          "roboscout",
		subsystem:          "analytics",
		latencyBuckets:     prometheus.DefBuckets,
		probabilityBuckets: prometheus.LinearBuckets(0, 0.1, 11),
		enabled:            true,
		constLabels:        make(map[string]string),
		registry:           prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.analysisRuns = m.counter("analysis_runs_total", "Total number of season analyses computed")
	m.analysisLatency = m.histogram("analysis_latency_milliseconds", "Season analysis latency in milliseconds", m.latencyBuckets)
	m.teamsAnalyzed = m.gauge("teams_analyzed", "Number of teams in the latest season analysis")
	m.advancedTeams = m.gauge("advanced_teams", "Number of championship teams in the latest season analysis")
	m.fixtureLoadLatency = m.histogram("fixture_load_latency_milliseconds", "Fixture directory load latency in milliseconds", m.latencyBuckets)

	m.eventsIngested = m.counter("events_ingested_total", "Total number of event payloads ingested")
	m.eventsTotal = m.gauge("events_total", "Number of events held in the catalog")
	m.observationsRecorded = m.counter("observations_recorded_total", "Total number of new observation samples")
	m.observationsReplaced = m.counter("observations_replaced_total", "Total number of observation samples replaced by id")
	m.observationsTotal = m.gauge("observations_total", "Number of observation samples held in the catalog")
	m.inspectionsTotal = m.gauge("inspections_total", "Number of pit inspections held in the catalog")
	m.catalogQueryLatency = m.histogram("catalog_query_latency_milliseconds", "Catalog query latency in milliseconds", m.latencyBuckets)

	m.projectionsComputed = m.counter("projections_computed_total", "Total number of team projections computed")
	m.simulations = m.counter("simulations_total", "Total number of simulated matches")
	m.winProbability = m.histogram("win_probability", "Distribution of red alliance win probabilities", m.probabilityBuckets)

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component",
		"component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type and severity",
		"error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by HTTP endpoint",
		"endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that resulted in errors",
		"component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordAnalysis records one season analysis and its size.
func RecordAnalysis(latencyMs float64, teams, advanced int) {
	if !globalManager.enabled {
		return
	}
	globalManager.analysisRuns.Inc()
	globalManager.analysisLatency.Observe(latencyMs)
	globalManager.teamsAnalyzed.Set(float64(teams))
	globalManager.advancedTeams.Set(float64(advanced))
}

// RecordFixtureLoadLatency records how long a fixture directory took to load.
func RecordFixtureLoadLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fixtureLoadLatency.Observe(latencyMs)
}

// RecordEventIngested increments the events ingested counter.
func RecordEventIngested() {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsIngested.Inc()
}

// RecordObservation counts an observation sample; replaced marks an upsert
// of an existing id.
func RecordObservation(replaced bool) {
	if !globalManager.enabled {
		return
	}
	if replaced {
		globalManager.observationsReplaced.Inc()
		return
	}
	globalManager.observationsRecorded.Inc()
}

// UpdateCatalogSize sets the catalog gauges.
func UpdateCatalogSize(events, observations, inspections int) {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsTotal.Set(float64(events))
	globalManager.observationsTotal.Set(float64(observations))
	globalManager.inspectionsTotal.Set(float64(inspections))
}

// RecordCatalogQueryLatency records catalog query latency.
func RecordCatalogQueryLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogQueryLatency.Observe(latencyMs)
}

// RecordProjection increments the projections counter.
func RecordProjection() {
	if !globalManager.enabled {
		return
	}
	globalManager.projectionsComputed.Inc()
}

// RecordSimulation records a simulated match and its red win probability.
func RecordSimulation(redWinProbability float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.simulations.Inc()
	globalManager.winProbability.Observe(redWinProbability)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
