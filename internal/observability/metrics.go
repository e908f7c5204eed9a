package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	AuthRejectionsTotal *prometheus.CounterVec

	// Business metrics
	BookingsTotal      *prometheus.CounterVec
	EmailDeliveryTotal *prometheus.CounterVec
	CaptchaSentTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_room_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meeting_room_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_room_auth_rejections_total",
				Help: "Requests rejected by the auth gate",
			},
			[]string{"reason"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_room_bookings_total",
				Help: "Booking operations by action and outcome",
			},
			[]string{"action", "result"},
		),
		EmailDeliveryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_room_email_delivery_total",
				Help: "Emails sent by the worker",
			},
			[]string{"status"},
		),
		CaptchaSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_room_captcha_sent_total",
				Help: "Verification codes issued by purpose",
			},
			[]string{"purpose"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthRejectionsTotal,
		m.BookingsTotal,
		m.EmailDeliveryTotal,
		m.CaptchaSentTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the metrics were registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordBooking counts a booking operation
func (m *Metrics) RecordBooking(action string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.BookingsTotal.WithLabelValues(action, result).Inc()
}

// RecordEmailDelivery counts a worker email delivery attempt
func (m *Metrics) RecordEmailDelivery(success bool) {
	status := "sent"
	if !success {
		status = "failed"
	}
	m.EmailDeliveryTotal.WithLabelValues(status).Inc()
}

// RecordCaptcha counts an issued verification code
func (m *Metrics) RecordCaptcha(purpose string) {
	m.CaptchaSentTotal.WithLabelValues(purpose).Inc()
}

// RecordAuthRejection counts a request rejected by the auth gate
func (m *Metrics) RecordAuthRejection(reason string) {
	m.AuthRejectionsTotal.WithLabelValues(reason).Inc()
}
