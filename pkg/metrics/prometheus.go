// Package metrics provides Prometheus metrics for the reelmatch matching core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the matching service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Scoring
	pairsScored     prometheus.Counter
	pairScore       prometheus.Histogram
	factorFailures  *prometheus.CounterVec
	scoringDuration prometheus.Histogram

	// Filtering and ranking
	filterRejections  *prometheus.CounterVec
	filterValidations prometheus.Counter
	rankRequests      prometheus.Counter
	rankCandidates    prometheus.Histogram
	rankMatches       prometheus.Histogram
	rankDuration      prometheus.Histogram

	// Quiz and archetypes
	quizAttempts          prometheus.Counter
	quizAnswersDropped    prometheus.Counter
	archetypeAssignments  *prometheus.CounterVec
	reportsGenerated      *prometheus.CounterVec
	reportsUnavailable    *prometheus.CounterVec
	groupReportMemberSize prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryBytes prometheus.Gauge
	systemGoroutines  prometheus.Gauge
	systemGCPause     prometheus.Histogram
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
		namespace:      "reelmatch",
		subsystem:      "matching",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	scoreBuckets := prometheus.LinearBuckets(10, 10, 10)
	sizeBuckets := prometheus.ExponentialBuckets(1, 2, 12)

	m.pairsScored = auto.NewCounter(m.counterOpts("pairs_scored_total",
		"Total number of profile pairs scored"))
	m.pairScore = auto.NewHistogram(m.histogramOpts("pair_score",
		"Distribution of bounded pairwise compatibility scores", scoreBuckets))
	m.factorFailures = auto.NewCounterVec(m.counterOpts("scoring_factor_failures_total",
		"Scoring factors that failed and contributed zero"), []string{"factor"})
	m.scoringDuration = auto.NewHistogram(m.histogramOpts("scoring_duration_milliseconds",
		"Time spent scoring one pair in milliseconds", m.latencyBuckets))

	m.filterRejections = auto.NewCounterVec(m.counterOpts("filter_rejections_total",
		"Candidates excluded by the filter pipeline, by gate"), []string{"gate"})
	m.filterValidations = auto.NewCounter(m.counterOpts("filter_validation_errors_total",
		"Filter sets rejected as malformed"))
	m.rankRequests = auto.NewCounter(m.counterOpts("rank_requests_total",
		"Total number of ranking requests"))
	m.rankCandidates = auto.NewHistogram(m.histogramOpts("rank_candidates",
		"Candidate pool size per ranking request", sizeBuckets))
	m.rankMatches = auto.NewHistogram(m.histogramOpts("rank_matches",
		"Matches returned per ranking request", sizeBuckets))
	m.rankDuration = auto.NewHistogram(m.histogramOpts("rank_duration_milliseconds",
		"Time spent ranking a candidate pool in milliseconds", m.latencyBuckets))

	m.quizAttempts = auto.NewCounter(m.counterOpts("quiz_attempts_processed_total",
		"Quiz completions converted into attempts"))
	m.quizAnswersDropped = auto.NewCounter(m.counterOpts("quiz_answers_dropped_total",
		"Quiz answers dropped for referencing unknown questions or options"))
	m.archetypeAssignments = auto.NewCounterVec(m.counterOpts("archetype_assignments_total",
		"Primary archetypes assigned by the behavioral classifier"), []string{"archetype"})
	m.reportsGenerated = auto.NewCounterVec(m.counterOpts("reports_generated_total",
		"Compatibility reports generated"), []string{"kind"})
	m.reportsUnavailable = auto.NewCounterVec(m.counterOpts("reports_unavailable_total",
		"Compatibility reports that could not be produced"), []string{"kind", "reason"})
	m.groupReportMemberSize = auto.NewHistogram(m.histogramOpts("group_report_members",
		"Members per group report", sizeBuckets))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"})
	m.httpErrors = auto.NewCounterVec(m.counterOpts("http_errors_total",
		"HTTP responses with a 4xx or 5xx status"),
		[]string{"endpoint", "error_type"})

	m.systemMemoryBytes = auto.NewGauge(m.gaugeOpts("memory_alloc_bytes",
		"Bytes of allocated heap objects"))
	m.systemGoroutines = auto.NewGauge(m.gaugeOpts("goroutines",
		"Number of live goroutines"))
	m.systemGCPause = auto.NewHistogram(m.histogramOpts("gc_pause_milliseconds",
		"Average GC pause in milliseconds, sampled periodically", m.latencyBuckets))
}

// RecordPairScored counts one scored pair and observes its score and latency.
func RecordPairScored(score, latencyMs float64) {
	globalManager.pairsScored.Inc()
	globalManager.pairScore.Observe(score)
	globalManager.scoringDuration.Observe(latencyMs)
}

// RecordFactorFailure counts a scoring factor that was absorbed as zero.
func RecordFactorFailure(factor string) {
	globalManager.factorFailures.WithLabelValues(factor).Inc()
}

// RecordFilterRejection counts a candidate excluded at gate.
func RecordFilterRejection(gate string) {
	globalManager.filterRejections.WithLabelValues(gate).Inc()
}

// RecordFilterValidationError counts a malformed filter set.
func RecordFilterValidationError() {
	globalManager.filterValidations.Inc()
}

// RecordRank observes one ranking request.
func RecordRank(candidates, matches int, latencyMs float64) {
	globalManager.rankRequests.Inc()
	globalManager.rankCandidates.Observe(float64(candidates))
	globalManager.rankMatches.Observe(float64(matches))
	globalManager.rankDuration.Observe(latencyMs)
}

// RecordQuizAttempt counts a processed quiz and the answers it dropped.
func RecordQuizAttempt(dropped int) {
	globalManager.quizAttempts.Inc()
	if dropped > 0 {
		globalManager.quizAnswersDropped.Add(float64(dropped))
	}
}

// RecordArchetypeAssigned counts a primary archetype assignment.
func RecordArchetypeAssigned(archetype string) {
	globalManager.archetypeAssignments.WithLabelValues(archetype).Inc()
}

// RecordReportGenerated counts a report of kind ("pair" or "group").
func RecordReportGenerated(kind string) {
	globalManager.reportsGenerated.WithLabelValues(kind).Inc()
}

// RecordReportUnavailable counts a report that degraded to an explanatory message.
func RecordReportUnavailable(kind, reason string) {
	globalManager.reportsUnavailable.WithLabelValues(kind, reason).Inc()
}

// RecordGroupSize observes the member count of a group report.
func RecordGroupSize(members int) {
	globalManager.groupReportMemberSize.Observe(float64(members))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an error response by endpoint and type.
func RecordHTTPError(endpoint, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryBytes.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutines.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause sample.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPause.Observe(ms)
}
