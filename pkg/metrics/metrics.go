package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса со своим реестром
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SlotTransitions     *prometheus.CounterVec
	BookingAttempts     *prometheus.CounterVec
	UnbookedSlots       *prometheus.GaugeVec
	JournalWrites       *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SlotTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "range_slot_transitions_total",
				Help:        "Slot state transitions by kind",
				ConstLabels: constLabels,
			},
			[]string{"competition", "kind"},
		),
		BookingAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "range_booking_attempts_total",
				Help:        "Booking attempts by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		UnbookedSlots: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "range_unbooked_slots",
				Help:        "Slots without a booking per competition",
				ConstLabels: constLabels,
			},
			[]string{"competition"},
		),
		JournalWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "range_journal_writes_total",
				Help:        "Booking journal writes by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SlotTransitions,
		m.BookingAttempts,
		m.UnbookedSlots,
		m.JournalWrites,
		m.DBQueryDuration,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBookingAttempt учитывает попытку бронирования с результатом
func (m *Metrics) ObserveBookingAttempt(result string) {
	m.BookingAttempts.WithLabelValues(result).Inc()
}

// ObserveJournalWrite учитывает запись в журнал броней
func (m *Metrics) ObserveJournalWrite(result string) {
	m.JournalWrites.WithLabelValues(result).Inc()
}

// ObserveDBQuery замеряет запрос к БД, подходит как dbmetrics.Observer
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}
