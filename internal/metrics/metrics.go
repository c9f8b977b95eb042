// Package metrics exposes the service's Prometheus instrumentation,
// scraped at GET /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buscador_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "buscador_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

// CatalogFetches counts remote catalog queries by mode (search/discover)
// and result (ok/error/empty).
var CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buscador_catalog_fetches_total",
	Help: "Remote catalog queries by mode and result.",
}, []string{"mode", "result"})

// CommentWrites counts comment insert attempts by result.
var CommentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buscador_comment_writes_total",
	Help: "Comment insert attempts by result.",
}, []string{"result"})

// AuthEvents counts auth events (login, signup, social) by result.
var AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "buscador_auth_events_total",
	Help: "Auth events by type and result.",
}, []string{"event", "result"})

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per method/path/status.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		path := r.URL.Path
		if len(path) > 64 {
			path = path[:64]
		}
		status := strconv.Itoa(rw.status)
		HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
