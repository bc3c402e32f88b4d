// internal/notify/log.go

package notify

import (
	"context"

	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/models"
)

// LogNotifier writes wizard events to the structured log. It is the default
// notifier and always wired, whatever else is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) StepSaved(ctx context.Context, step string, draft models.Draft) {
	n.log.Info(SavedMessage(step), map[string]interface{}{
		"step": step,
	})
}

func (n *LogNotifier) StepRejected(ctx context.Context, step string, reason error) {
	n.log.Info("Step rejected", map[string]interface{}{
		"step":   step,
		"reason": reason.Error(),
	})
}

func (n *LogNotifier) Submitted(ctx context.Context, applicationID string, draft models.Draft) {
	n.log.Info(SubmittedMessage, map[string]interface{}{
		"applicationId": applicationID,
	})
}
