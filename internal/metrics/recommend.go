package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RecommendQueriesTotal counts recommendation queries by outcome
	// ("results"/"empty").
	RecommendQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinerank",
			Name:      "recommend_queries_total",
			Help:      "Total recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendDuration measures the full pipeline latency.
	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cinerank",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// RecommendCacheTotal counts cache lookups by result ("hit"/"miss").
	RecommendCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinerank",
			Name:      "recommend_cache_total",
			Help:      "Recommendation cache lookups by result",
		},
		[]string{"result"},
	)
)

// RegisterRecommendMetrics registers the pipeline metrics explicitly (no init()).
func RegisterRecommendMetrics() {
	prometheus.MustRegister(RecommendQueriesTotal)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(RecommendCacheTotal)
}
