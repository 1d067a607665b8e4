package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for the status endpoint.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sequenceVisits  *prometheus.CounterVec
	plansBuilt      *prometheus.CounterVec
	decisionOutcome *prometheus.CounterVec
	oracleCalls     *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	sequenceCount        uint64
	planCount            uint64
	appliedCount         uint64
	failedCount          uint64
	oracleCallCount      uint64
	oracleFallbackCount  uint64
}

// NewMetricsService registers the scheduling collectors.
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

	sequenceVisits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sequence_visits_total",
		Help: "Visits processed by sequence scheduling, by outcome",
	}, []string{"outcome"})

	plansBuilt := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_plans_built_total",
		Help: "Reschedule plans built, by strategy",
	}, []string{"strategy"})

	decisionOutcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_decisions_total",
		Help: "Executed reschedule decisions, by outcome",
	}, []string{"outcome"})

	oracleCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oracle_requests_total",
		Help: "Oracle recommendation requests, by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sequenceVisits, plansBuilt, decisionOutcome, oracleCalls, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		sequenceVisits:  sequenceVisits,
		plansBuilt:      plansBuilt,
		decisionOutcome: decisionOutcome,
		oracleCalls:     oracleCalls,
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

// ObserveHTTPRequest records request metrics and aggregates simple stats.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordSequence counts the outcome split of one scheduled sequence.
func (m *MetricsService) RecordSequence(booked, unplaced int) {
	if m == nil {
		return
	}
	m.sequenceVisits.WithLabelValues("booked").Add(float64(booked))
	m.sequenceVisits.WithLabelValues("unplaced").Add(float64(unplaced))
	atomic.AddUint64(&m.sequenceCount, 1)
}

// RecordPlanBuilt counts one built reschedule plan.
func (m *MetricsService) RecordPlanBuilt(strategy string) {
	if m == nil {
		return
	}
	m.plansBuilt.WithLabelValues(strategy).Inc()
	atomic.AddUint64(&m.planCount, 1)
	if strategy == strategyFallback {
		atomic.AddUint64(&m.oracleFallbackCount, 1)
	} else {
		atomic.AddUint64(&m.oracleCallCount, 1)
	}
	m.oracleCalls.WithLabelValues(strategy).Inc()
}

// RecordExecution counts decision outcomes of one executed plan.
func (m *MetricsService) RecordExecution(applied, failed int) {
	if m == nil {
		return
	}
	m.decisionOutcome.WithLabelValues("applied").Add(float64(applied))
	m.decisionOutcome.WithLabelValues("failed").Add(float64(failed))
	atomic.AddUint64(&m.appliedCount, uint64(applied))
	atomic.AddUint64(&m.failedCount, uint64(failed))
}

// Snapshot returns aggregated metrics for the status endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		SequencesScheduled:       atomic.LoadUint64(&m.sequenceCount),
		PlansBuilt:               atomic.LoadUint64(&m.planCount),
		DecisionsApplied:         atomic.LoadUint64(&m.appliedCount),
		DecisionsFailed:          atomic.LoadUint64(&m.failedCount),
		OracleCalls:              atomic.LoadUint64(&m.oracleCallCount),
		OracleFallbacks:          atomic.LoadUint64(&m.oracleFallbackCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
