// internal/steps/review/validator.go

// Package review validates the final wizard step: the applicant must tick
// the confirmation gate before the application can be submitted.
package review

import (
	"context"
	"encoding/json"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/steps"
)

const StepName = "review"

// Input carries the review step submission.
type Input struct {
	Confirmed bool `json:"confirmed"`
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) Name() string {
	return StepName
}

// Validate enforces the confirmation gate. The review step writes nothing
// into the draft; the returned result is empty.
func (v *Validator) Validate(ctx context.Context, current models.Draft, raw []byte) (steps.Result, error) {
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return steps.Result{}, errors.NewInvalidPayloadError(err.Error())
	}

	if !in.Confirmed {
		return steps.Result{}, errors.NewNotConfirmedError()
	}
	return steps.Result{}, nil
}
