// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	authFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "irridash_auth_failures_total",
			Help: "Guard check failures by outcome.",
		},
		[]string{"reason"},
	)

	impersonationStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "irridash_impersonation_started_total",
			Help: "Impersonation sessions started.",
		},
	)

	impersonationEnded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "irridash_impersonation_ended_total",
			Help: "Impersonation sessions ended.",
		},
	)
)

// IncAuthFailure records a failed guard check.
func IncAuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}

// IncImpersonationStarted records a started impersonation session.
func IncImpersonationStarted() {
	impersonationStarted.Inc()
}

// IncImpersonationEnded records an ended impersonation session.
func IncImpersonationEnded() {
	impersonationEnded.Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
