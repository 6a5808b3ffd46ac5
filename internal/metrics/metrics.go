// Package metrics exposes Prometheus collectors for the site API.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	submissionsTotal           *prometheus.CounterVec
	feedFetchTotal             *prometheus.CounterVec
	aggregationsTotal          *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call
// multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteapi_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route, and code.",
			},
			[]string{"method", "route", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "siteapi_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		)

		submissionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteapi_submissions_total",
				Help: "Total number of contact submissions processed, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		feedFetchTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteapi_feed_fetch_total",
				Help: "Total number of feed fetch attempts, labeled by source and outcome.",
			},
			[]string{"source", "outcome"},
		)

		aggregationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siteapi_news_aggregations_total",
				Help: "Total number of news aggregation runs, labeled by status.",
			},
			[]string{"status"},
		)
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, route string, status int, seconds float64) {
	Init()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(seconds)
}

// ObserveSubmission records one intake attempt by outcome
// (accepted, rejected, failed).
func ObserveSubmission(outcome string) {
	Init()
	submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveFeedFetch records one per-source fetch attempt by outcome
// (ok, empty, error).
func ObserveFeedFetch(source, outcome string) {
	Init()
	feedFetchTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveAggregation records one aggregation run by status (ok, empty).
func ObserveAggregation(status string) {
	Init()
	aggregationsTotal.WithLabelValues(status).Inc()
}
