package yatranslate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics, labelled by the endpoint path segment (getLangs, detect, translate).
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatranslate_requests_total",
			Help: "Total number of Yandex Translate API requests by HTTP status",
		},
		[]string{"endpoint", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yatranslate_request_duration_seconds",
			Help:    "Duration of Yandex Translate API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"endpoint"},
	)

	// Cache metrics
	langsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatranslate_langs_cache_total",
			Help: "Language list lookups by cache result (hit, miss, bypass)",
		},
		[]string{"result"},
	)
)

// observeRequest records one finished request. status is the HTTP status code,
// or "error" when the transport failed.
func observeRequest(endpoint, status string, duration time.Duration) {
	requestsTotal.WithLabelValues(endpoint, status).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func observeLangsCache(result string) {
	langsCacheTotal.WithLabelValues(result).Inc()
}
