// Package metrics defines and registers all custom Prometheus metrics for
// the renewal platform API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "renewal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts sign-in attempts.
// Labels:
//   - method: "email" (heuristic) or "id_number" (credentialed)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// SignupsTotal counts account creations.
// Label:
//   - user_type: the derived user type of the new principal
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-ups, by derived user type.",
	},
	[]string{"user_type"},
)

// SessionsOpenedTotal counts sessions opened by the authentication paths.
// Label:
//   - method: "signup", "email" (heuristic) or "id_number" (credentialed)
var SessionsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions opened, by authentication method.",
	},
	[]string{"method"},
)

// SessionsClosedTotal counts explicit sign-outs.
var SessionsClosedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of sessions closed by sign-out.",
	},
)

// AuthOperationDuration measures wall time per authentication operation.
// Label:
//   - operation: "signup", "signin", "signin_id", "signout",
//     "reset_password" or "update_profile"
var AuthOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_operation_duration_seconds",
		Help:      "Duration of authentication operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard verdicts.
// Label:
//   - outcome: "allow", "allow_demo", "allow_mismatch", or "allow_admin"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Voting metrics ────────────────────────────────────────────────────────────

// VotesCastTotal counts recorded ballots.
// Label:
//   - ballot: "in_favor", "against", or "abstain"
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of ballots recorded, by ballot value.",
	},
	[]string{"ballot"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesDeliveredTotal counts messages processed by the delivery workers.
// Label:
//   - result: "ok", "error", or "shed" for messages rejected by a full queue
var MessagesDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_delivered_total",
		Help:      "Total number of messages processed by the delivery workers.",
	},
	[]string{"result"},
)

// MessageQueueDepth tracks the number of messages waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MessageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "message_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
