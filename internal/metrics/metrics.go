// README: Prometheus collectors for HTTP traffic, intent dispatch and collaborator failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcomes for IntentsDispatched.
const (
	OutcomeHandled       = "handled"
	OutcomeClarification = "clarification"
	OutcomeSkipped       = "skipped"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlas_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atlas_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	IntentsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlas_intents_dispatched_total",
			Help: "Intent records dispatched by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	DispatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlas_dispatch_failures_total",
			Help: "Smart queries that failed before dispatch, by stage",
		},
		[]string{"stage"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlas_collaborator_failures_total",
			Help: "Failed outbound lookups by collaborator and reason",
		},
		[]string{"collaborator", "reason"},
	)
)
