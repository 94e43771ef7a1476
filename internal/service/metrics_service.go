package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/tv-instance-generator/internal/models"
)

// Preview lookup outcomes.
const (
	LookupHit  = "hit"
	LookupMiss = "miss"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generated       *prometheus.CounterVec
	programs        prometheus.Histogram
	lookups         *prometheus.CounterVec
	batches         *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	instanceCount        uint64
	programCount         uint64
	lookupHits           uint64
	lookupMisses         uint64
}

// NewMetricsService registers the collectors on a private registry.
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

	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instances_generated_total",
		Help: "Generated scheduling instances by entry point",
	}, []string{"source"})

	programs := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "instance_programs",
		Help:    "Programs per generated instance",
		Buckets: prometheus.ExponentialBuckets(8, 2, 10),
	})

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "preview_lookups_total",
		Help: "Preview store lookups by result",
	}, []string{"result"})

	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_jobs_total",
		Help: "Batch export jobs by terminal status",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generated, programs, lookups, batches, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generated:       generated,
		programs:        programs,
		lookups:         lookups,
		batches:         batches,
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

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveGeneration counts one generated instance and its program total.
func (m *MetricsService) ObserveGeneration(source string, programs int) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(source).Inc()
	m.programs.Observe(float64(programs))
	atomic.AddUint64(&m.instanceCount, 1)
	atomic.AddUint64(&m.programCount, uint64(programs))
}

// RecordPreviewLookup counts a preview store read.
func (m *MetricsService) RecordPreviewLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.lookups.WithLabelValues(LookupHit).Inc()
		atomic.AddUint64(&m.lookupHits, 1)
		return
	}
	m.lookups.WithLabelValues(LookupMiss).Inc()
	atomic.AddUint64(&m.lookupMisses, 1)
}

// RecordBatch counts a batch job reaching status.
func (m *MetricsService) RecordBatch(status models.BatchStatus) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(string(status)).Inc()
}

// Snapshot returns aggregated counters for the JSON summary endpoint.
func (m *MetricsService) Snapshot() models.MetricsSnapshot {
	if m == nil {
		return models.MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	hits := atomic.LoadUint64(&m.lookupHits)
	misses := atomic.LoadUint64(&m.lookupMisses)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var hitRatio float64
	if total := hits + misses; total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return models.MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		InstancesGenerated:       atomic.LoadUint64(&m.instanceCount),
		ProgramsGenerated:        atomic.LoadUint64(&m.programCount),
		PreviewHitRatio:          hitRatio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
