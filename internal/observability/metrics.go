package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce              sync.Once
	httpRequestsTotal         *prometheus.CounterVec
	httpLatencySeconds        *prometheus.HistogramVec
	httpErrorsTotal           *prometheus.CounterVec
	notificationsCreatedTotal *prometheus.CounterVec
	emailsSentTotal           prometheus.Counter
	emailsFailedTotal         prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lls_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lls_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lls_http_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		notificationsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lls_notifications_created_total",
			Help: "Notification rows created, labelled by event type.",
		}, []string{"notification_type"})

		emailsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lls_emails_sent_total",
			Help: "Notification emails successfully handed to the SMTP server.",
		})

		emailsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lls_emails_failed_total",
			Help: "Notification email deliveries that failed.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			notificationsCreatedTotal,
			emailsSentTotal,
			emailsFailedTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// NotificationsCreated exposes the counter for created notification rows.
func NotificationsCreated() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsCreatedTotal
}

// EmailsSent exposes the counter for delivered notification emails.
func EmailsSent() prometheus.Counter {
	RegisterMetrics()
	return emailsSentTotal
}

// EmailsFailed exposes the counter for failed notification emails.
func EmailsFailed() prometheus.Counter {
	RegisterMetrics()
	return emailsFailedTotal
}
