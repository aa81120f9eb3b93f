package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	sessionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_sessions_created_total",
			Help: "Total number of assessment sessions created",
		},
		[]string{"assessment"},
	)

	fieldsUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_fields_updated_total",
			Help: "Total number of form field updates",
		},
		[]string{"assessment"},
	)

	documentsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_documents_exported_total",
			Help: "Total number of documents exported",
		},
		[]string{"assessment", "format"},
	)

	sessionsCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_sessions_cleared_total",
			Help: "Total number of sessions explicitly cleared",
		},
		[]string{"assessment"},
	)

	ruleEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_rule_evaluations_total",
			Help: "Total number of recommendation rule table evaluations",
		},
		[]string{"assessment"},
	)
)

// RecordSessionCreated increments the session creation counter
func RecordSessionCreated(assessment string) {
	sessionsCreated.WithLabelValues(assessment).Inc()
}

// RecordFieldUpdated increments the field update counter
func RecordFieldUpdated(assessment string) {
	fieldsUpdated.WithLabelValues(assessment).Inc()
}

// RecordDocumentExported increments the export counter
func RecordDocumentExported(assessment, format string) {
	documentsExported.WithLabelValues(assessment, format).Inc()
}

// RecordSessionCleared increments the session cleared counter
func RecordSessionCleared(assessment string) {
	sessionsCleared.WithLabelValues(assessment).Inc()
}

// RecordRuleEvaluation increments the rule evaluation counter
func RecordRuleEvaluation(assessment string) {
	ruleEvaluations.WithLabelValues(assessment).Inc()
}

// Handler returns the prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records HTTP metrics for each request
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(wrapped.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
