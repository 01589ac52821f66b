// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are registered with the default registry at init through promauto,
so any package may record into them without wiring. Label values are kept to
small closed sets (route patterns, scopes, outcomes) to bound cardinality.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache outcomes recorded by [RecordSnapshotCache].
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

var (
	// HTTPRequestsTotal counts requests by method, chi route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// ViewAssembleDuration measures one filter-and-sort pass.
	// Labels:
	//   - scope: "series", "volumes", "orphans"
	ViewAssembleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "shelfy_view_assemble_duration_seconds",
			Help: "Duration of view assembly (filter + sort) in seconds",
			// Pure CPU work over a personal shelf: 50µs to 250ms
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"scope"},
	)

	// ViewItems observes how many entities a pass considered.
	ViewItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shelfy_view_items",
			Help:    "Number of volumes in the snapshot fed to a view pass",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
	)

	// SnapshotCacheTotal counts snapshot cache lookups.
	// Labels:
	//   - outcome: "hit", "miss", "error"
	SnapshotCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfy_snapshot_cache_total",
			Help: "Snapshot cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordSnapshotCache records one cache lookup outcome.
func RecordSnapshotCache(outcome string) {
	SnapshotCacheTotal.WithLabelValues(outcome).Inc()
}

// RecordViewAssemble records the duration and input size of a view pass.
func RecordViewAssemble(scope string, duration time.Duration, volumes int) {
	ViewAssembleDuration.WithLabelValues(scope).Observe(duration.Seconds())
	ViewItems.Observe(float64(volumes))
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// # HTTP Instrumentation

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Instrument records request count and latency labelled with the chi route
// pattern, never the raw path. Unmatched requests share the "unmatched" label.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(wrappedWriter, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(wrappedWriter.status)).Inc()
		HTTPRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}
