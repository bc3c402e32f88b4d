// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepValidationsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_validations_accepted_total",
			Help: "Total number of accepted step submissions",
		},
		[]string{"step"},
	)

	StepValidationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_validations_rejected_total",
			Help: "Total number of rejected step submissions",
		},
		[]string{"step", "error_code"},
	)

	DraftsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizard_drafts_persisted_total",
			Help: "Total number of draft writes to durable storage",
		},
	)

	SubmissionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizard_submissions_completed_total",
			Help: "Total number of finalized applications",
		},
	)
)
