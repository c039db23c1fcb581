// Package metrics defines the custom Prometheus metrics of the back-office
// API. Metrics register with the default registry on import; HTTP request
// metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "disabled", "validation",
//     "rate_limited", "in_flight" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests that cleared the session store.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of completed logouts.",
	},
)

// SessionRestoresTotal counts session restores per request.
// Label:
//   - state: the state the session ended in ("authenticated", "unauthenticated")
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restores, by resulting state.",
	},
	[]string{"state"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// GateDecisionsTotal counts permission gate outcomes.
// Labels:
//   - permission: the required tag, or "any"
//   - decision: "allow", "denied", "hidden" or "loading"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of permission gate decisions.",
	},
	[]string{"permission", "decision"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountMutationsTotal counts successful user management writes.
// Label:
//   - op: "create", "update", "toggle_status" or "delete"
var AccountMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_mutations_total",
		Help:      "Total number of account writes, by operation.",
	},
	[]string{"op"},
)

// RegisterLastLoginQueueDepth exposes the pending last-login updates.
// Call once at startup.
func RegisterLastLoginQueueDepth(depth func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_login_queue_depth",
			Help:      "Current number of last-login updates waiting to be written.",
		},
		func() float64 { return float64(depth()) },
	)
}
