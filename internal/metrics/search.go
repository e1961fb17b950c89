package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome label values.
const (
	SearchOutcomePrimary  = "primary"
	SearchOutcomeFallback = "fallback"
	SearchOutcomeEmpty    = "empty"
)

// Search and embedding Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "searches_total",
			Help:      "Total document searches by outcome",
		},
		[]string{"outcome"}, // "primary" / "fallback" / "empty"
	)

	SearchFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "search_fallback_total",
			Help:      "Total keyword-fallback queries issued",
		},
	)

	SearchHitsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsearch",
			Name:      "search_hits_returned",
			Help:      "Number of hits returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docsearch",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsearch",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and embedding metrics.
// Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchFallbackTotal)
	prometheus.MustRegister(SearchHitsReturned)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	searchMetricsRegistered = true
}
