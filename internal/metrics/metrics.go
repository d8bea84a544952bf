package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/DukeRupert/pagenav/internal/paginator"
)

const namespace = "pagenav"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Pagination metrics
var (
	PageWindowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_windows_total",
			Help:      "Total number of page windows generated",
		},
		[]string{"shape"}, // "empty", "full" or "sliding"
	)

	PageWindowEntries = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_window_entries",
			Help:      "Number of entries in generated page windows, ellipses included",
			Buckets:   prometheus.LinearBuckets(0, 2, 12),
		},
	)

	InvalidConfigurationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_configuration_total",
			Help:      "Total number of rejected paginator settings",
		},
		[]string{"op"},
	)

	RequestsBeyondLastPage = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_beyond_last_page_total",
			Help:      "Total number of requests for a page past the last page",
		},
	)
)

// WindowShape classifies a page window for the shape label.
func WindowShape(pages []paginator.Page) string {
	if len(pages) == 0 {
		return "empty"
	}
	for _, p := range pages {
		if p.IsEllipsis {
			return "sliding"
		}
	}
	return "full"
}

// ObserveWindow records a generated page window.
func ObserveWindow(pages []paginator.Page) {
	PageWindowsTotal.WithLabelValues(WindowShape(pages)).Inc()
	PageWindowEntries.Observe(float64(len(pages)))
}

// InvalidConfiguration records a rejected setting for the given operation.
func InvalidConfiguration(op string) {
	if op == "" {
		op = "unknown"
	}
	InvalidConfigurationTotal.WithLabelValues(op).Inc()
}
