// Package metrics define los contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petvet_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petvet_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ToggleOperations cuenta set/clear por lista y resultado (ok, conflict, invalid_state, ...).
	ToggleOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petvet_post_toggle_operations_total",
		Help: "Post toggle list operations by list, operation and result",
	}, []string{"list", "op", "result"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petvet_upstream_requests_total",
		Help: "Calls to the business-search provider by operation and result",
	}, []string{"op", "result"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petvet_bizsearch_cache_lookups_total",
		Help: "Business-search cache lookups by operation and outcome (hit, miss, error)",
	}, []string{"op", "outcome"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
