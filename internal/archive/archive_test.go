package archive

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/models"
)

func archiveDraft() models.Draft {
	return models.Draft{
		FirstName:  models.String("Ada"),
		LastName:   models.String("Lovelace"),
		Email:      models.String("ada@example.com"),
		LoanAmount: models.Float(25000),
		Terms:      models.Int(20),
		Salary:     models.Float(4000),
	}
}

func TestRecord_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO loan_applications`).
		WithArgs(
			sqlmock.AnyArg(), // application ID (UUID)
			sqlmock.AnyArg(), // JSON bytes
			StatusSubmitted,
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(
			"application_submitted",
			"loan_application",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorder := NewRecorder(db, nil, logger.NewTestLogger(t))

	applicationID, err := recorder.Record(context.Background(), archiveDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, applicationID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO loan_applications`).
		WillReturnError(assert.AnError)

	recorder := NewRecorder(db, nil, logger.NewTestLogger(t))

	_, err = recorder.Record(context.Background(), archiveDraft())
	assert.True(t, errors.IsCode(err, errors.ErrCodeArchiveFailed))
}

func TestRecord_AuditFailureDoesNotFail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO loan_applications`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(assert.AnError)

	recorder := NewRecorder(db, nil, logger.NewTestLogger(t))

	applicationID, err := recorder.Record(context.Background(), archiveDraft())
	assert.NoError(t, err)
	assert.NotEmpty(t, applicationID)
}
