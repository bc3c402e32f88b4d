// internal/steps/loanrequest/validator.go

// Package loanrequest validates the third wizard step: loan amount, upfront
// payment and term length, including the cross-field rules against the
// applicant's age.
package loanrequest

import (
	"context"
	"encoding/json"
	"time"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/steps"
)

const StepName = "loan-request"

type Validator struct {
	now func() time.Time
}

func New() *Validator {
	return &Validator{now: time.Now}
}

func NewAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

func (v *Validator) Name() string {
	return StepName
}

func (v *Validator) Validate(ctx context.Context, current models.Draft, raw []byte) (steps.Result, error) {
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return steps.Result{}, errors.NewInvalidPayloadError(err.Error())
	}

	var fieldErrs errors.FieldErrors

	loanAmount, ok := v.checkAmount(in, &fieldErrs)
	upfront, upfrontOK := v.checkUpfront(in, &fieldErrs)
	terms, termsOK := v.checkTerms(in, &fieldErrs)

	// cross-field rules run only when both operands passed on their own
	if ok && upfrontOK && upfront >= loanAmount {
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldUpfrontPayment),
			Code:    errors.ErrCodeBusinessRuleViolation,
			Message: "Must be less than loan amount",
		})
	}

	if termsOK {
		age, _ := current.AgeAt(v.now())
		if float64(terms)/12+float64(age) >= MaxAgeAtMaturity {
			fieldErrs = append(fieldErrs, errors.FieldError{
				Field:   string(models.FieldTerms),
				Code:    errors.ErrCodeBusinessRuleViolation,
				Message: "Terms too long given your age (must stay under 80)",
			})
		}
	}

	if len(fieldErrs) > 0 {
		return steps.Result{}, fieldErrs
	}

	return steps.Result{
		Fields: models.Draft{
			LoanAmount:     models.Float(loanAmount),
			UpfrontPayment: models.Float(upfront),
			Terms:          models.Int(terms),
		},
	}, nil
}

func (v *Validator) checkAmount(in Input, fieldErrs *errors.FieldErrors) (float64, bool) {
	field := string(models.FieldLoanAmount)

	if in.LoanAmount == nil {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeMissingRequired,
			Message: "Loan amount is required",
		})
		return 0, false
	}
	amount, ok := steps.Number(in.LoanAmount)
	if !ok {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Loan amount must be a number",
		})
		return 0, false
	}
	if amount < MinLoanAmount {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Minimum is 10,000",
		})
		return 0, false
	}
	if amount > MaxLoanAmount {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Maximum is 70,000",
		})
		return 0, false
	}
	return amount, true
}

func (v *Validator) checkUpfront(in Input, fieldErrs *errors.FieldErrors) (float64, bool) {
	field := string(models.FieldUpfrontPayment)

	if in.UpfrontPayment == nil {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeMissingRequired,
			Message: "Upfront payment is required",
		})
		return 0, false
	}
	upfront, ok := steps.Number(in.UpfrontPayment)
	if !ok {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Upfront payment must be a number",
		})
		return 0, false
	}
	if upfront < 0 {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Must be 0 or greater",
		})
		return 0, false
	}
	return upfront, true
}

func (v *Validator) checkTerms(in Input, fieldErrs *errors.FieldErrors) (int, bool) {
	field := string(models.FieldTerms)

	if in.Terms == nil {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeMissingRequired,
			Message: "Terms are required",
		})
		return 0, false
	}
	terms, ok := steps.Integer(in.Terms)
	if !ok {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Terms must be a whole number of months",
		})
		return 0, false
	}
	if terms < MinTermMonths {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Min 10 months",
		})
		return 0, false
	}
	if terms > MaxTermMonths {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Max 30 months",
		})
		return 0, false
	}
	return terms, true
}
