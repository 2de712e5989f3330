package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API
// and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	calendarsGenerated *prometheus.CounterVec
	requestsCreated    prometheus.Counter
	conflictsDetected  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	calendarsGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_calendars_generated_total",
		Help: "Total exam calendar generations, labelled by program class",
	}, []string{"program_class"})

	requestsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exam_requests_created_total",
		Help: "Total exam requests created by the generator",
	})

	conflictsDetected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exam_generation_conflicts_total",
		Help: "Total per-unit conflicts reported by the generator",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, calendarsGenerated, requestsCreated, conflictsDetected, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		calendarsGenerated: calendarsGenerated,
		requestsCreated:    requestsCreated,
		conflictsDetected:  conflictsDetected,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
}

// CalendarGenerated counts a completed generation.
func (m *MetricsService) CalendarGenerated(programClass string) {
	if m == nil {
		return
	}
	m.calendarsGenerated.WithLabelValues(programClass).Inc()
}

// RequestsCreated counts persisted exam requests.
func (m *MetricsService) RequestsCreated(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.requestsCreated.Add(float64(count))
}

// ConflictsDetected counts reported per-unit conflicts.
func (m *MetricsService) ConflictsDetected(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.conflictsDetected.Add(float64(count))
}
