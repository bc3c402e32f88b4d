// internal/archive/archive.go

// Package archive persists finalized applications into Postgres and,
// optionally, an Elasticsearch index.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/models"
)

const StatusSubmitted = "submitted"

type Recorder struct {
	db      *sql.DB
	indexer *Indexer
	logger  logger.Logger
}

// NewRecorder creates a recorder. indexer may be nil when search indexing is
// disabled.
func NewRecorder(db *sql.DB, indexer *Indexer, log logger.Logger) *Recorder {
	return &Recorder{db: db, indexer: indexer, logger: log}
}

// Record writes the finalized application and returns its generated ID. The
// audit trail and the search index are best effort; only the application
// insert itself can fail the submission.
func (r *Recorder) Record(ctx context.Context, draft models.Draft) (string, error) {
	applicationID := uuid.New().String()
	submittedAt := time.Now().UTC()
	createdAt := submittedAt.Format(time.RFC3339)

	applicationJSON, err := json.Marshal(draft)
	if err != nil {
		return "", errors.NewArchiveFailedError("failed to encode application", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO loan_applications (
			id, application_data, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $4)`,
		applicationID,
		applicationJSON,
		StatusSubmitted,
		createdAt,
	)
	if err != nil {
		return "", errors.NewArchiveFailedError("application insert failed", err)
	}

	r.writeAuditLog(ctx, applicationID, draft, createdAt)

	if r.indexer != nil {
		if err := r.indexer.Index(ctx, applicationID, draft, submittedAt); err != nil {
			r.logger.Warn("search index write failed", map[string]interface{}{
				"error":         err,
				"applicationId": applicationID,
			})
		}
	}

	r.logger.Info("application archived", map[string]interface{}{
		"applicationId": applicationID,
	})
	return applicationID, nil
}

func (r *Recorder) writeAuditLog(ctx context.Context, applicationID string, draft models.Draft, createdAt string) {
	details := map[string]interface{}{}
	if draft.LoanAmount != nil {
		details["loanAmount"] = *draft.LoanAmount
	}
	if draft.Terms != nil {
		details["terms"] = *draft.Terms
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		r.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		detailsJSON = []byte("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_submitted",
		"loan_application",
		applicationID,
		detailsJSON,
		createdAt,
	)
	if err != nil {
		r.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": applicationID,
		})
	}
}
