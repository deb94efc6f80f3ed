package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec

	availabilityChecksTotal *prometheus.CounterVec
	waitlistEntriesTotal    *prometheus.CounterVec
	paymentSessionsTotal    *prometheus.CounterVec

	documentUploadsTotal   *prometheus.CounterVec
	documentRejectedTotal  *prometheus.CounterVec
	documentUploadLatencyS prometheus.Histogram
	eventsPublishedTotal   *prometheus.CounterVec
	incidentsReportedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		availabilityChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_checks_total",
			Help: "Total number of program availability checks by outcome.",
		}, []string{"outcome"})

		waitlistEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waitlist_entries_total",
			Help: "Total number of waitlist submissions by outcome.",
		}, []string{"outcome"})

		paymentSessionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_sessions_total",
			Help: "Total number of payment session initiations by outcome.",
		}, []string{"outcome"})

		documentUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_uploads_total",
			Help: "Total number of stored documents by category.",
		}, []string{"category"})

		documentRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_uploads_rejected_total",
			Help: "Total number of rejected document uploads by reason.",
		}, []string{"reason"})

		documentUploadLatencyS = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "document_upload_latency_seconds",
			Help:    "Latency distribution for document intake including storage round trips.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		eventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published by subject.",
		}, []string{"subject"})

		incidentsReportedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "incidents_reported_total",
			Help: "Total number of incident reports created by severity.",
		}, []string{"severity"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			availabilityChecksTotal,
			waitlistEntriesTotal,
			paymentSessionsTotal,
			documentUploadsTotal,
			documentRejectedTotal,
			documentUploadLatencyS,
			eventsPublishedTotal,
			incidentsReportedTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// AvailabilityChecks exposes the availability check counter.
func AvailabilityChecks() *prometheus.CounterVec {
	RegisterMetrics()
	return availabilityChecksTotal
}

// WaitlistEntries exposes the waitlist submission counter.
func WaitlistEntries() *prometheus.CounterVec {
	RegisterMetrics()
	return waitlistEntriesTotal
}

// PaymentSessions exposes the payment initiation counter.
func PaymentSessions() *prometheus.CounterVec {
	RegisterMetrics()
	return paymentSessionsTotal
}

// DocumentUploads exposes the stored-document counter.
func DocumentUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return documentUploadsTotal
}

// DocumentRejected exposes the rejected-upload counter.
func DocumentRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return documentRejectedTotal
}

// DocumentUploadLatency exposes the document intake latency histogram.
func DocumentUploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return documentUploadLatencyS
}

// EventsPublished exposes the domain event counter.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublishedTotal
}

// IncidentsReported exposes the incident report counter.
func IncidentsReported() *prometheus.CounterVec {
	RegisterMetrics()
	return incidentsReportedTotal
}
