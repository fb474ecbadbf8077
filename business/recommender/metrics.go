package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_interactions_total",
			Help: "Count of applied preference interactions by type.",
		},
		[]string{"type"},
	)

	RecommendationsServedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_recommendations_served_total",
		Help: "Total recommendation lists produced by the scoring engine.",
	})

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_search_requests_total",
			Help: "Search requests by outcome (ok, invalid, canceled).",
		},
		[]string{"outcome"},
	)

	SearchResultsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_search_results",
		Help:    "Number of results returned per search.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	ProfileRecoveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_profile_recoveries_total",
			Help: "Times the default profile replaced a stored one, by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(
		InteractionsTotal,
		RecommendationsServedTotal,
		SearchRequestsTotal,
		SearchResultsReturned,
		ProfileRecoveriesTotal,
	)
}
