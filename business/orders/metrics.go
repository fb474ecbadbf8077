package orders

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CheckoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Checkout attempts by outcome (ok, empty, error).",
		},
		[]string{"outcome"},
	)

	OrderValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_value",
		Help:    "Order totals including shipping and tax.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
)

func init() {
	prometheus.MustRegister(CheckoutsTotal, OrderValue)
}
