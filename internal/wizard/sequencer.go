// internal/wizard/sequencer.go

// Package wizard drives the five-step application flow: it sequences steps,
// runs the per-step validators, merges accepted fields into the persisted
// draft and finalizes the application.
package wizard

import (
	"context"
	"reflect"
	"sync"
	"time"

	"loan-wizard/internal/archive"
	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/common/metrics"
	"loan-wizard/internal/common/observability"
	"loan-wizard/internal/draft"
	"loan-wizard/internal/models"
	"loan-wizard/internal/notify"
	"loan-wizard/internal/steps"
	"loan-wizard/internal/steps/contactdetails"
	"loan-wizard/internal/steps/financialinfo"
	"loan-wizard/internal/steps/loanrequest"
	"loan-wizard/internal/steps/personalinfo"
	"loan-wizard/internal/steps/review"
)

var stepOrder = []Step{StepPersonal, StepContact, StepLoan, StepFinancial, StepReview}

// Sequencer owns one applicant's walk through the wizard. All methods are
// safe for concurrent use; the draft itself is only mutated through the
// store.
type Sequencer struct {
	store      draft.Store
	validators map[Step]steps.Validator
	recorder   *archive.Recorder
	notifier   notify.Notifier
	obs        *observability.Observability
	log        logger.Logger

	mu        sync.Mutex
	current   Step
	draft     models.Draft
	startedAt time.Time
}

type Option func(*Sequencer)

// WithRecorder archives finalized applications. Without one, finalize only
// clears the draft.
func WithRecorder(r *archive.Recorder) Option {
	return func(s *Sequencer) { s.recorder = r }
}

func WithObservability(obs *observability.Observability) Option {
	return func(s *Sequencer) { s.obs = obs }
}

// WithValidator swaps the validator for one step.
func WithValidator(step Step, v steps.Validator) Option {
	return func(s *Sequencer) { s.validators[step] = v }
}

func New(store draft.Store, notifier notify.Notifier, log logger.Logger, opts ...Option) *Sequencer {
	s := &Sequencer{
		store:    store,
		notifier: notifier,
		log:      log,
		validators: map[Step]steps.Validator{
			StepPersonal:  personalinfo.New(),
			StepContact:   contactdetails.New(),
			StepLoan:      loanrequest.New(),
			StepFinancial: financialinfo.New(),
			StepReview:    review.New(),
		},
		current:   StepPersonal,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the persisted draft. Seed fields, if any, are merged in and
// persisted before the first step renders.
func (s *Sequencer) Start(ctx context.Context, seed ...models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, sd := range seed {
		loaded, err = s.store.Merge(ctx, sd)
		if err != nil {
			return err
		}
	}
	s.draft = loaded
	s.startedAt = time.Now()
	return nil
}

func (s *Sequencer) Current() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sequencer) Draft() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Submit validates the payload against the current step. On acceptance the
// fields are merged into the draft and the wizard advances; on the review
// step submission finalizes the application.
func (s *Sequencer) Submit(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == StepSubmitted {
		return errors.NewBusinessRuleError("Application already submitted", "")
	}
	if s.current == StepReview {
		return s.finalize(ctx, raw)
	}

	validator := s.validators[s.current]
	res, err := validator.Validate(ctx, s.draft, raw)
	if err != nil {
		metrics.StepValidationsRejected.WithLabelValues(validator.Name(), rejectionCode(err)).Inc()
		s.notifier.StepRejected(ctx, validator.Name(), err)
		return err
	}
	metrics.StepValidationsAccepted.WithLabelValues(validator.Name()).Inc()

	before := s.draft
	merged, err := s.store.Merge(ctx, res.Fields, res.Drops...)
	if err != nil {
		return err
	}
	s.draft = merged

	// the save notification only fires when the draft actually changed
	if !reflect.DeepEqual(before, merged) {
		s.notifier.StepSaved(ctx, validator.Name(), merged)
	}

	s.transition(ctx, s.next())
	return nil
}

// Back moves one step backwards without validating. Draft fields persist.
func (s *Sequencer) Back(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == StepSubmitted {
		return errors.NewBusinessRuleError("Application already submitted", "")
	}
	if s.current == StepPersonal {
		return nil
	}
	s.transition(ctx, s.current-1)
	return nil
}

// Goto jumps directly to a step, as a navigation adapter does when the
// applicant addresses a step directly.
func (s *Sequencer) Goto(ctx context.Context, step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == StepSubmitted {
		return errors.NewBusinessRuleError("Application already submitted", "")
	}
	if step < StepPersonal || step > StepReview {
		step = StepPersonal
	}
	s.transition(ctx, step)
	return nil
}

// CanFinalize reports whether the wizard is positioned on the review step.
func (s *Sequencer) CanFinalize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == StepReview
}

// Finalize runs the review gate and completes the application: archive,
// clear the draft, signal success. It fails without side effects when the
// confirmation is missing.
func (s *Sequencer) Finalize(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == StepSubmitted {
		return errors.NewBusinessRuleError("Application already submitted", "")
	}
	if s.current != StepReview {
		return errors.NewBusinessRuleError("Not on the review step", s.current.Name())
	}
	return s.finalize(ctx, raw)
}

func (s *Sequencer) finalize(ctx context.Context, raw []byte) error {
	validator := s.validators[StepReview]
	if _, err := validator.Validate(ctx, s.draft, raw); err != nil {
		metrics.StepValidationsRejected.WithLabelValues(validator.Name(), rejectionCode(err)).Inc()
		s.notifier.StepRejected(ctx, validator.Name(), err)
		return err
	}
	metrics.StepValidationsAccepted.WithLabelValues(validator.Name()).Inc()

	applicationID := ""
	if s.recorder != nil {
		id, err := s.recorder.Record(ctx, s.draft)
		if err != nil {
			// the draft stays intact so the applicant can retry
			return err
		}
		applicationID = id
	}

	submitted := s.draft
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn("draft clear failed after archive", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.draft = models.Draft{}
	s.transition(ctx, StepSubmitted)

	metrics.SubmissionsCompleted.Inc()
	if s.obs != nil {
		s.obs.RecordSubmission(ctx, time.Since(s.startedAt), "submitted")
	}
	s.notifier.Submitted(ctx, applicationID, submitted)
	return nil
}

func (s *Sequencer) next() Step {
	for i, step := range stepOrder {
		if step == s.current && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return StepReview
}

func (s *Sequencer) transition(ctx context.Context, to Step) {
	from := s.current
	if from == to {
		return
	}
	s.current = to
	if s.obs != nil {
		s.obs.RecordTransition(ctx, from.Name(), to.Name())
	}
	s.log.Debug("step transition", map[string]interface{}{
		"from": from.Name(),
		"to":   to.Name(),
	})
}

func rejectionCode(err error) string {
	if se, ok := errors.AsStandardError(err); ok {
		return string(se.Code)
	}
	if _, ok := errors.AsFieldErrors(err); ok {
		return string(errors.ErrCodeInvalidValue)
	}
	return "UNKNOWN"
}
