// Package metrics defines all custom Prometheus metrics for the award board.
// It is the single source of truth for metric names, labels, and help strings.
//
// Vectors register themselves with the default registry via promauto; the
// echoprometheus middleware adds the standard HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "award_board"

// AwardsRecordedTotal counts award grants written for authenticated users.
// Label:
//   - code: the HTTP status code recorded (e.g. "418")
var AwardsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "awards_recorded_total",
		Help:      "Total number of award codes recorded against users.",
	},
	[]string{"code"},
)

// RateLimitedTotal counts requests rejected by the fixed-window limiter.
// Label:
//   - route: the protected route (e.g. "home")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
	[]string{"route"},
)

// CommentsTotal counts comment board activity.
// Label:
//   - action: "added", "removed", or "rejected"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment operations, by outcome.",
	},
	[]string{"action"},
)
