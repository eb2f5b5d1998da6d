// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "user_service"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds by method and route",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // ~0.5ms up to ~1s
	}, []string{"method", "route"})
	panicsRecovered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_recovered_total",
		Help:      "Total number of panics recovered by the error middleware",
	})

	listCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_lookups_total",
		Help:      "Total number of user list cache lookups by result (hit, miss)",
	}, []string{"result"})
	listCacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_invalidations_total",
		Help:      "Total number of user list cache invalidations",
	})

	userMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user mutations by operation",
	}, []string{"operation"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of rejected payloads by field",
	}, []string{"field"})
	usersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "users",
		Help:      "Current number of stored users",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, panicsRecovered,
			listCacheLookups, listCacheInvalidations,
			userMutations, validationFailures, usersGauge)
	})
}

// HTTP helpers
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
func IncPanicRecovered() { panicsRecovered.Inc() }

// Cache helpers
func IncCacheHit()          { listCacheLookups.WithLabelValues("hit").Inc() }
func IncCacheMiss()         { listCacheLookups.WithLabelValues("miss").Inc() }
func IncCacheInvalidation() { listCacheInvalidations.Inc() }

// Store helpers
func IncMutation(operation string)     { userMutations.WithLabelValues(operation).Inc() }
func IncValidationFailure(field string) { validationFailures.WithLabelValues(field).Inc() }
func SetUsers(n int)                    { usersGauge.Set(float64(n)) }
