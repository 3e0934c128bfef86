// Package metrics defines and registers all custom Prometheus metrics for the
// user management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry through
// promauto when the package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersCreatedTotal counts newly stored users.
// Label:
//   - source: "register" (self-service) or "admin" (created through /users/)
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of users created, by source.",
	},
	[]string{"source"},
)

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", "locked" or "error"
//
// Requests rejected by the login rate limiter never reach the handler and
// are counted in RateLimitedTotal instead.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EmailVerificationsTotal counts email verification outcomes.
// Label:
//   - result: "verified" or "rejected"
var EmailVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_verifications_total",
		Help:      "Total number of email verification requests, by result.",
	},
	[]string{"result"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// AuthFailuresTotal counts requests whose bearer credential could not be resolved.
// Label:
//   - reason: "missing_header", "invalid_token" or "missing_claims"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected as unauthenticated, by reason.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts authenticated requests rejected by a role gate.
// Label:
//   - role: the caller's role (e.g. "AUTHENTICATED")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by role authorization, by role.",
	},
	[]string{"role"},
)

// ── Email metrics ─────────────────────────────────────────────────────────────

// EmailQueueDepth tracks the current number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EmailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "email_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EmailsSentTotal counts delivery outcomes.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full)
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of verification emails handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// EmailSendDuration measures how long a single delivery takes.
var EmailSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_send_duration_seconds",
		Help:      "Duration of a single email delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RateLimitedTotal counts requests rejected by the per-IP rate limiter.
// Label:
//   - route: the matched route path (e.g. "/login/")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)
