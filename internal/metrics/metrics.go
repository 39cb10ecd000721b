package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CorridorSearches *prometheus.CounterVec
	SearchSeconds    prometheus.Histogram
	Candidates       prometheus.Histogram
	StoreErrors      prometheus.Counter
	TollMutations    *prometheus.CounterVec
	DirectionsErrors prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CorridorSearches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tollway_corridor_searches_total",
			Help: "Total number of toll corridor searches by outcome.",
		}, []string{"status"}),
		SearchSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "tollway_corridor_search_duration_seconds",
			Help:    "Duration of toll corridor searches, store query included.",
			Buckets: prometheus.DefBuckets,
		}),
		Candidates: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "tollway_corridor_candidates",
			Help:    "Number of toll stations returned by the store for a search window.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		StoreErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tollway_store_errors_total",
			Help: "Total number of errors received from the toll station store.",
		}),
		TollMutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tollway_toll_mutations_total",
			Help: "Total number of administrative toll station changes by operation and outcome.",
		}, []string{"operation", "status"}),
		DirectionsErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tollway_directions_api_errors_total",
			Help: "Total number of errors received from the directions provider API.",
		}),
	}
}
