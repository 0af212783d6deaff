// Package metrics defines the custom Prometheus metrics for the Transaction
// Service. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fraudtx"

// TransactionsCreatedTotal counts recorded transactions.
var TransactionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions recorded.",
	},
)

// PredictionsRecordedTotal counts fraud-model verdicts.
// Label:
//   - fraudulent: "true" or "false"
var PredictionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_recorded_total",
		Help:      "Total number of fraud predictions recorded, by verdict.",
	},
	[]string{"fraudulent"},
)

// AuthVerifyDuration measures calls to the Authentication Service's
// verify-token endpoint.
// Label:
//   - outcome: "ok" or "error"
var AuthVerifyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_verify_duration_seconds",
		Help:      "Duration of token verification calls to the auth service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
