// Package metrics defines and registers the custom Prometheus metrics for the
// CRM API. It is the single source of truth for metric names, labels, and
// help strings; all counters register themselves with the default registry
// on import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

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

// LeadsCreatedTotal counts newly captured leads.
// Label:
//   - channel: "email" or "sms"
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by channel.",
	},
	[]string{"channel"},
)

// TasksCompletedTotal counts tasks moved to the completed status.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks marked completed.",
	},
)

// ClockEventsTotal counts time-clock punches.
// Label:
//   - event: "in" or "out"
var ClockEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_events_total",
		Help:      "Total number of time clock punches, by event.",
	},
	[]string{"event"},
)

// RateLimitedTotal counts requests rejected by the API rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with HTTP 429.",
	},
)
