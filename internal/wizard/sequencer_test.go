package wizard

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-wizard/internal/archive"
	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/draft"
	"loan-wizard/internal/models"
)

// recordingNotifier captures wizard events for assertions.
type recordingNotifier struct {
	saved     []string
	rejected  []string
	submitted int
}

func (n *recordingNotifier) StepSaved(ctx context.Context, step string, d models.Draft) {
	n.saved = append(n.saved, step)
}

func (n *recordingNotifier) StepRejected(ctx context.Context, step string, reason error) {
	n.rejected = append(n.rejected, step)
}

func (n *recordingNotifier) Submitted(ctx context.Context, applicationID string, d models.Draft) {
	n.submitted++
}

var stepPayloads = map[Step]string{
	StepPersonal:  `{"firstName":"Ada","lastName":"Lovelace","dateOfBirth":"1990-04-12"}`,
	StepContact:   `{"email":"ada@example.com","phone":"+4915123456789"}`,
	StepLoan:      `{"loanAmount":25000,"upfrontPayment":5000,"terms":20}`,
	StepFinancial: `{"salary":4000}`,
	StepReview:    `{"confirmed":true}`,
}

func newSequencer(t *testing.T, opts ...Option) (*Sequencer, draft.Store, *recordingNotifier) {
	t.Helper()
	store, err := draft.NewFileStore(t.TempDir(), logger.NewTestLogger(t))
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	seq := New(store, notifier, logger.NewTestLogger(t), opts...)
	require.NoError(t, seq.Start(context.Background()))
	return seq, store, notifier
}

func TestSequencer_FullWalkthrough(t *testing.T) {
	seq, store, notifier := newSequencer(t)
	ctx := context.Background()

	for _, step := range stepOrder {
		assert.Equal(t, step, seq.Current())
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])), "step %s", step.Name())
	}

	assert.Equal(t, StepSubmitted, seq.Current())
	assert.Equal(t, 1, notifier.submitted)
	assert.Len(t, notifier.saved, 4)

	// the draft is gone once the application is submitted
	d, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Draft{}, d)
	assert.Equal(t, models.Draft{}, seq.Draft())
}

func TestSequencer_RejectionKeepsStep(t *testing.T) {
	seq, store, notifier := newSequencer(t)
	ctx := context.Background()

	err := seq.Submit(ctx, []byte(`{"firstName":"Ada Maria","lastName":"Lovelace","dateOfBirth":"1990-04-12"}`))
	_, ok := errors.AsFieldErrors(err)
	require.True(t, ok)

	assert.Equal(t, StepPersonal, seq.Current())
	assert.Equal(t, []string{"personal-info"}, notifier.rejected)
	assert.Empty(t, notifier.saved)

	// nothing was persisted
	d, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Draft{}, d)
}

func TestSequencer_BackPreservesFields(t *testing.T) {
	seq, _, _ := newSequencer(t)
	ctx := context.Background()

	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepPersonal])))
	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepContact])))
	assert.Equal(t, StepLoan, seq.Current())

	require.NoError(t, seq.Back(ctx))
	assert.Equal(t, StepContact, seq.Current())

	d := seq.Draft()
	require.NotNil(t, d.Email)
	assert.Equal(t, "ada@example.com", *d.Email)
	require.NotNil(t, d.FirstName)
	assert.Equal(t, "Ada", *d.FirstName)
}

func TestSequencer_BackOnFirstStepIsNoOp(t *testing.T) {
	seq, _, _ := newSequencer(t)

	require.NoError(t, seq.Back(context.Background()))
	assert.Equal(t, StepPersonal, seq.Current())
}

func TestSequencer_UnchangedResubmitDoesNotNotify(t *testing.T) {
	seq, _, notifier := newSequencer(t)
	ctx := context.Background()

	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepPersonal])))
	require.Len(t, notifier.saved, 1)

	require.NoError(t, seq.Back(ctx))
	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepPersonal])))

	assert.Len(t, notifier.saved, 1)
}

func TestSequencer_FinalizeRequiresConfirmation(t *testing.T) {
	seq, store, notifier := newSequencer(t)
	ctx := context.Background()

	for _, step := range stepOrder[:4] {
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])))
	}
	assert.True(t, seq.CanFinalize())

	err := seq.Finalize(ctx, []byte(`{"confirmed":false}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotConfirmed))

	// wizard position and draft are untouched
	assert.Equal(t, StepReview, seq.Current())
	assert.Equal(t, 0, notifier.submitted)
	d, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, d.FirstName)
}

func TestSequencer_FinalizeOffReviewStepFails(t *testing.T) {
	seq, _, _ := newSequencer(t)

	err := seq.Finalize(context.Background(), []byte(`{"confirmed":true}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeBusinessRuleViolation))
	assert.False(t, seq.CanFinalize())
}

func TestSequencer_ArchiveFailureKeepsDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO loan_applications`).WillReturnError(assert.AnError)

	recorder := archive.NewRecorder(db, nil, logger.NewNoOpLogger())
	seq, store, notifier := newSequencer(t, WithRecorder(recorder))
	ctx := context.Background()

	for _, step := range stepOrder[:4] {
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])))
	}

	err = seq.Finalize(ctx, []byte(`{"confirmed":true}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeArchiveFailed))

	// the applicant can retry: position held, draft retained
	assert.Equal(t, StepReview, seq.Current())
	assert.Equal(t, 0, notifier.submitted)
	d, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, d.LoanAmount)
}

func TestSequencer_ArchivesOnFinalize(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO loan_applications`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

	recorder := archive.NewRecorder(db, nil, logger.NewNoOpLogger())
	seq, _, notifier := newSequencer(t, WithRecorder(recorder))
	ctx := context.Background()

	for _, step := range stepOrder {
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])))
	}

	assert.Equal(t, 1, notifier.submitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequencer_TerminalAfterSubmission(t *testing.T) {
	seq, _, _ := newSequencer(t)
	ctx := context.Background()

	for _, step := range stepOrder {
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])))
	}

	assert.Error(t, seq.Submit(ctx, []byte(stepPayloads[StepPersonal])))
	assert.Error(t, seq.Back(ctx))
	assert.Error(t, seq.Goto(ctx, StepPersonal))
	assert.False(t, seq.CanFinalize())
}

func TestSequencer_GotoNavigatesDirectly(t *testing.T) {
	seq, _, _ := newSequencer(t)
	ctx := context.Background()

	require.NoError(t, seq.Goto(ctx, StepFinancial))
	assert.Equal(t, StepFinancial, seq.Current())

	// out of range falls back to the first step
	require.NoError(t, seq.Goto(ctx, Step(42)))
	assert.Equal(t, StepPersonal, seq.Current())
}

func TestSequencer_ResumesFromPersistedDraft(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	store, err := draft.NewFileStore(dir, log)
	require.NoError(t, err)
	seq := New(store, &recordingNotifier{}, log)
	require.NoError(t, seq.Start(ctx))
	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepPersonal])))

	// a fresh sequencer over the same store sees the saved fields
	store2, err := draft.NewFileStore(dir, log)
	require.NoError(t, err)
	seq2 := New(store2, &recordingNotifier{}, log)
	require.NoError(t, seq2.Start(ctx))

	d := seq2.Draft()
	require.NotNil(t, d.FirstName)
	assert.Equal(t, "Ada", *d.FirstName)
}

func TestSequencer_StartWithSeed(t *testing.T) {
	store, err := draft.NewFileStore(t.TempDir(), logger.NewTestLogger(t))
	require.NoError(t, err)
	seq := New(store, &recordingNotifier{}, logger.NewTestLogger(t))

	require.NoError(t, seq.Start(context.Background(), models.Draft{
		FirstName: models.String("Grace"),
	}))

	d := seq.Draft()
	require.NotNil(t, d.FirstName)
	assert.Equal(t, "Grace", *d.FirstName)
}

func TestSequencer_ToggledOffFieldsDisappear(t *testing.T) {
	seq, store, _ := newSequencer(t)
	ctx := context.Background()

	for _, step := range stepOrder[:2] {
		require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[step])))
	}
	require.NoError(t, seq.Submit(ctx, []byte(stepPayloads[StepLoan])))
	require.NoError(t, seq.Submit(ctx, []byte(`{"salary":4000,"additionalIncome":500,"showAdditionalIncome":true}`)))

	d, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, d.AdditionalIncome)

	// revisit the step and toggle the extra income off
	require.NoError(t, seq.Back(ctx))
	require.NoError(t, seq.Submit(ctx, []byte(`{"salary":4000}`)))

	d, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, d.AdditionalIncome)
	require.NotNil(t, d.ShowAdditionalIncome)
	assert.False(t, *d.ShowAdditionalIncome)
}
