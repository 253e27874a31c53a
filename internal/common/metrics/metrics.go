// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DemoStepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demo_step_transitions_total",
			Help: "Total number of demo step transitions",
		},
		[]string{"from", "to"},
	)

	DemoScansCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "demo_scans_completed_total",
			Help: "Total number of simulated scans that reached 100 percent",
		},
	)

	DemoSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "demo_sessions_active",
			Help: "Number of live demo sessions",
		},
	)

	SubmissionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_recorded_total",
			Help: "Total number of accepted form submissions",
		},
		[]string{"kind"},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_rejected_total",
			Help: "Total number of submissions rejected by validation",
		},
		[]string{"kind", "field"},
	)

	SubmissionStorageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_storage_fallbacks_total",
			Help: "Submissions that fell back to console-only logging",
		},
		[]string{"log_key"},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Reviewer notifications that could not be sent",
		},
		[]string{"channel"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)
)
