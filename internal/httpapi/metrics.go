package httpapi

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fecreport",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fecreport",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
	uploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fecreport",
			Name:      "uploads_total",
			Help:      "Total number of accepted FEC uploads",
		},
	)
	uploadEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fecreport",
			Name:      "upload_entries_total",
			Help:      "Total number of ledger lines accepted across uploads",
		},
	)
	reportBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fecreport",
			Name:      "report_builds_total",
			Help:      "Total number of report recomputations",
		},
	)
	reportBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fecreport",
			Name:      "report_build_duration_seconds",
			Help:      "Duration of full report recomputations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := strconv.Itoa(ww.Status())
		httpRequestsTotal.WithLabelValues(r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}
