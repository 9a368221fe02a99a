package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fandressouza/indicacoes/domain"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indicacoes_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "indicacoes_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indicacoes_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	listingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indicacoes_listings_submitted_total",
		Help: "Listing submissions by result",
	}, []string{"result"})

	moderationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indicacoes_moderation_actions_total",
		Help: "Approve and reject attempts by result",
	}, []string{"action", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Recorder implements domain.MetricsRecorder on the process-wide collectors
type Recorder struct{}

// NewRecorder returns a recorder backed by the default registry
func NewRecorder() domain.MetricsRecorder { return Recorder{} }

// ObserveLogin implements domain.MetricsRecorder
func (Recorder) ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveSubmission implements domain.MetricsRecorder
func (Recorder) ObserveSubmission(result string) {
	listingsSubmitted.WithLabelValues(result).Inc()
}

// ObserveModeration implements domain.MetricsRecorder
func (Recorder) ObserveModeration(action, result string) {
	moderationActions.WithLabelValues(action, result).Inc()
}

// Result turns an operation error into a metric label
func Result(err error) string {
	if err == nil {
		return "success"
	}
	return domain.Code(err)
}
