package transaction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	posted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_transactions_posted_total",
			Help: "Money movements applied to the ledger, by transaction type.",
		},
		[]string{"type"},
	)
	rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_movement_rejections_total",
			Help: "Money movements refused, by transaction type and reason.",
		},
		[]string{"type", "reason"},
	)
)
