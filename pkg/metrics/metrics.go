// Package metrics Prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	BookingsCommitted   *prometheus.CounterVec
	SlotConflicts       *prometheus.CounterVec
	BookingTransitions  *prometheus.CounterVec
	NotificationFailure *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}, []string{}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{}),

		BookingsCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_committed_total",
			Help:        "Bookings successfully committed",
			ConstLabels: labels,
		}, []string{"service_category"}),
		SlotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Commit or accept attempts rejected with a slot conflict",
			ConstLabels: labels,
		}, []string{"stage"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking lifecycle transitions",
			ConstLabels: labels,
		}, []string{"action", "result"}),
		NotificationFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notification_failures_total",
			Help:        "Suppressed notification delivery failures",
			ConstLabels: labels,
		}, []string{"event"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBWaitCount,
		m.BookingsCommitted,
		m.SlotConflicts,
		m.BookingTransitions,
		m.NotificationFailure,
	)

	return m
}

// Recorder бизнес-метрики бронирований. Безопасен при nil *Metrics.
type Recorder struct {
	m *Metrics
}

// NewRecorder создает Recorder; m может быть nil, тогда все вызовы no-op
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

func (r *Recorder) BookingCommitted(category string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingsCommitted.WithLabelValues(category).Inc()
}

func (r *Recorder) SlotConflict(stage string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.SlotConflicts.WithLabelValues(stage).Inc()
}

func (r *Recorder) Transition(action string, ok bool) {
	if r == nil || r.m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "rejected"
	}
	r.m.BookingTransitions.WithLabelValues(action, result).Inc()
}

func (r *Recorder) NotificationFailed(event string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.NotificationFailure.WithLabelValues(event).Inc()
}
