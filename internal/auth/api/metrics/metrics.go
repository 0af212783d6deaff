// Package metrics defines the custom Prometheus metrics for the
// Authentication Service. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authsvc"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts minted tokens by role.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by role.",
	},
	[]string{"role"},
)

// TokenVerificationsTotal counts verification requests.
// Label:
//   - result: "valid" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verification requests, by result.",
	},
	[]string{"result"},
)

// TokensSweptTotal counts expired tokens evicted by the background sweep.
var TokensSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_swept_total",
		Help:      "Total number of expired tokens evicted by the periodic sweep.",
	},
)
