package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts checkout submissions by outcome:
	// recorded | rejected | failed | in_flight.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopdesk_checkout_submissions_total",
			Help: "Checkout submissions by outcome",
		},
		[]string{"outcome"},
	)

	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopdesk_checkout_rejections_total",
			Help: "Checkout validation rejections by field",
		},
		[]string{"field"},
	)

	StockWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopdesk_cart_stock_warnings_total",
			Help: "Capacity warnings raised while editing carts",
		},
		[]string{"code"},
	)

	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopdesk_sale_total_amount",
			Help:    "Total amount of recorded sales",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopdesk_checkout_sessions_active",
			Help: "Checkout sessions currently held in memory",
		},
	)
)
