// Package metrics defines and registers all custom Prometheus metrics for the
// recruitment API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recruitment"

// JobsCreatedTotal counts newly created job postings.
// Label:
//   - department: the posting's department
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by department.",
	},
	[]string{"department"},
)

// ApplicationsCreatedTotal counts submitted applications.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications submitted.",
	},
)

// StatusTransitionsTotal counts application status changes.
// Label:
//   - to: the new status
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of application status transitions, by new status.",
	},
	[]string{"to"},
)

// CacheRequestsTotal counts cache lookups.
// Labels:
//   - prefix: the cache key family (e.g. "jobs", "users")
//   - result: "hit" or "miss"
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of cache lookups, by key family and result.",
	},
	[]string{"prefix", "result"},
)

// EventsProcessedTotal counts post-commit events handled by each consumer.
// Labels:
//   - consumer: the consumer name (e.g. "audit-recorder", "notifier")
//   - action: the domain action carried by the event
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of domain events processed, by consumer and action.",
	},
	[]string{"consumer", "action"},
)

// EventsErrorsTotal counts consumer failures.
// Label:
//   - consumer: the consumer name
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of domain events whose processing failed.",
	},
	[]string{"consumer"},
)

// EmailsSentTotal counts outbound mail attempts.
// Label:
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, by delivery result.",
	},
	[]string{"result"},
)

// WebsocketConnections tracks currently registered real-time connections.
var WebsocketConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_connections",
		Help:      "Current number of live websocket connections.",
	},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)
