// Package metrics exposes Prometheus instrumentation on a private registry,
// served on the metrics port separately from the API.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	ingestTotal          *prometheus.CounterVec
	ingestChunksTotal    *prometheus.CounterVec
	ingestDuration       *prometheus.HistogramVec
	graphStatementsTotal *prometheus.CounterVec

	searchTotal     *prometheus.CounterVec
	searchChunks    *prometheus.HistogramVec
	searchDuration  *prometheus.HistogramVec
	searchModeTotal *prometheus.CounterVec
	searchMissTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawgraph",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lawgraph",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	ingestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "ingest",
			Name:      "cases_total",
			Help:      "Total ingestion batches by status.",
		},
		[]string{"service", "status"},
	)
	ingestChunksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "ingest",
			Name:      "chunks_total",
			Help:      "Total chunks indexed by completed ingestion batches.",
		},
		[]string{"service"},
	)
	ingestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawgraph",
			Subsystem: "ingest",
			Name:      "duration_seconds",
			Help:      "Ingestion batch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	graphStatementsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "graph",
			Name:      "statements_total",
			Help:      "Total graph statements executed by kind and status.",
		},
		[]string{"service", "kind", "status"},
	)
	searchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total completed retrieval requests.",
		},
		[]string{"service", "endpoint"},
	)
	searchChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawgraph",
			Subsystem: "search",
			Name:      "retrieved_chunks",
			Help:      "Distribution of retrieved chunks per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service", "endpoint"},
	)
	searchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawgraph",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Retrieval duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	searchModeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "search",
			Name:      "mode_requests_total",
			Help:      "Total retrieval requests by scoring mode.",
		},
		[]string{"service", "endpoint", "mode"},
	)
	searchMissTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawgraph",
			Subsystem: "search",
			Name:      "no_result_total",
			Help:      "Total retrieval requests that returned no chunks.",
		},
		[]string{"service", "endpoint"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		ingestTotal,
		ingestChunksTotal,
		ingestDuration,
		graphStatementsTotal,
		searchTotal,
		searchChunks,
		searchDuration,
		searchModeTotal,
		searchMissTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		ingestTotal:          ingestTotal,
		ingestChunksTotal:    ingestChunksTotal,
		ingestDuration:       ingestDuration,
		graphStatementsTotal: graphStatementsTotal,
		searchTotal:          searchTotal,
		searchChunks:         searchChunks,
		searchDuration:       searchDuration,
		searchModeTotal:      searchModeTotal,
		searchMissTotal:      searchMissTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath folds case-scoped paths into one label value to bound
// cardinality.
func normalizePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "/v1/cases/"); ok && rest != "recent" {
		if _, resource, found := strings.Cut(rest, "/"); found {
			return "/v1/cases/{case_id}/" + resource
		}
		return "/v1/cases/{case_id}"
	}
	return path
}

func (m *HTTPServerMetrics) RecordIngest(service, status string, chunkCount int, duration time.Duration) {
	m.ingestTotal.WithLabelValues(service, status).Inc()
	if status == "ok" {
		m.ingestChunksTotal.WithLabelValues(service).Add(float64(chunkCount))
	}
	m.ingestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordGraphStatement(service, kind, status string) {
	m.graphStatementsTotal.WithLabelValues(service, kind, status).Inc()
}

func (m *HTTPServerMetrics) RecordSearch(service, endpoint, mode string, chunkCount int, duration time.Duration) {
	m.searchTotal.WithLabelValues(service, endpoint).Inc()
	m.searchModeTotal.WithLabelValues(service, endpoint, mode).Inc()
	m.searchChunks.WithLabelValues(service, endpoint).Observe(float64(chunkCount))
	m.searchDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
	if chunkCount == 0 {
		m.searchMissTotal.WithLabelValues(service, endpoint).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
