package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsSkipped counts dataset rows dropped because they failed to convert.
	RowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "presence_rows_skipped_total",
		Help: "Dataset rows dropped because a field failed to parse.",
	})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "presence_cache_hits_total",
		Help: "Cached loader calls served from a fresh entry.",
	}, []string{"key"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "presence_cache_misses_total",
		Help: "Cached loader calls that had to invoke the producer.",
	}, []string{"key"})

	cacheLoadSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "presence_cache_load_seconds",
		Help:    "Time spent in cache producers.",
		Buckets: prometheus.DefBuckets,
	}, []string{"key", "result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "presence_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "presence_http_request_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// CacheObserver records cache activity as prometheus metrics.
type CacheObserver struct{}

// Hit records a call served from cache.
func (CacheObserver) Hit(key string) { cacheHits.WithLabelValues(key).Inc() }

// Miss records a call that invoked the producer.
func (CacheObserver) Miss(key string) { cacheMisses.WithLabelValues(key).Inc() }

// Loaded records the duration and outcome of one producer call.
func (CacheObserver) Loaded(key string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheLoadSeconds.WithLabelValues(key, result).Observe(d.Seconds())
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, code string, d time.Duration) {
	httpRequests.WithLabelValues(route, code).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
