// internal/notify/notify.go

// Package notify delivers applicant-facing notifications for wizard events:
// step saves, rejections and the final submission.
package notify

import (
	"context"

	"loan-wizard/internal/models"
)

// Notifier receives wizard lifecycle events. Implementations are best
// effort; a failed delivery never blocks the wizard.
type Notifier interface {
	// StepSaved fires after a step save that actually changed the draft.
	StepSaved(ctx context.Context, step string, draft models.Draft)

	// StepRejected fires when a step submission fails validation.
	StepRejected(ctx context.Context, step string, reason error)

	// Submitted fires exactly once, after the finalized application has
	// been archived and the draft cleared.
	Submitted(ctx context.Context, applicationID string, draft models.Draft)
}

// SavedMessage returns the applicant-facing confirmation for a saved step.
func SavedMessage(step string) string {
	switch step {
	case "personal-info":
		return "Personal info saved"
	case "contact-details":
		return "Contact info saved"
	case "loan-request":
		return "Loan request saved"
	case "financial-info":
		return "Financial info saved"
	default:
		return "Saved"
	}
}

// SubmittedMessage is the applicant-facing confirmation for a completed
// application.
const SubmittedMessage = "Application Submitted!"

// Multi fans events out to several notifiers in order.
type Multi []Notifier

func (m Multi) StepSaved(ctx context.Context, step string, draft models.Draft) {
	for _, n := range m {
		n.StepSaved(ctx, step, draft)
	}
}

func (m Multi) StepRejected(ctx context.Context, step string, reason error) {
	for _, n := range m {
		n.StepRejected(ctx, step, reason)
	}
}

func (m Multi) Submitted(ctx context.Context, applicationID string, draft models.Draft) {
	for _, n := range m {
		n.Submitted(ctx, applicationID, draft)
	}
}
