// Package metrics Prometheus-метрики сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	integrationDuration *prometheus.HistogramVec
	fetchesSuperseded   prometheus.Counter
	staffResolutions    *prometheus.CounterVec
	slotsReturned       prometheus.Histogram
	activeSessions      prometheus.Gauge

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		serviceName: serviceName,
		registry:    prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		integrationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "integration_request_duration_seconds",
			Help:        "Latency of calls to external services",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2, 5},
		}, []string{"target", "operation", "outcome"}),
		fetchesSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_fetches_superseded_total",
			Help:        "Availability responses dropped because a newer request was issued",
			ConstLabels: constLabels,
		}),
		staffResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "staff_resolutions_total",
			Help:        "Staff resolution attempts by selection mode and outcome",
			ConstLabels: constLabels,
		}, []string{"mode", "outcome"}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "slots_returned",
			Help:        "Number of bookable slots returned per computation",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "reschedule_sessions_active",
			Help:        "Unexpired reschedule sessions in the session store",
			ConstLabels: constLabels,
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Latency of database queries",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "outcome"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.integrationDuration,
		m.fetchesSuperseded,
		m.staffResolutions,
		m.slotsReturned,
		m.activeSessions,
		m.dbQueryDuration,
		m.dbConnections,
	)

	return m
}

// Handler HTTP-обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry реестр метрик (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveIntegration(target, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.integrationDuration.WithLabelValues(target, operation, outcome).Observe(duration.Seconds())
}

func (m *Metrics) IncFetchSuperseded() {
	if m == nil {
		return
	}
	m.fetchesSuperseded.Inc()
}

func (m *Metrics) IncStaffResolution(mode, outcome string) {
	if m == nil {
		return
	}
	m.staffResolutions.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.slotsReturned.Observe(float64(count))
}

// SetActiveSessions выставляет число неистекших сессий, посчитанное по хранилищу
func (m *Metrics) SetActiveSessions(n int64) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}
