// internal/steps/financialinfo/validator.go

// Package financialinfo validates the fourth wizard step: salary, optional
// income and obligation amounts, and the affordability rule combining them
// with the requested loan.
package financialinfo

import (
	"context"
	"encoding/json"
	"fmt"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/steps"
)

const StepName = "financial-info"

// affordabilityFactor halves the disposable income accumulated over the loan
// term before comparing it to the requested amount. Kept as a fixed business
// rule.
const affordabilityFactor = 0.5

type Validator struct{}

func New() *Validator {
	return &Validator{}
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

	salary, salaryOK := v.checkSalary(in, &fieldErrs)
	additional := v.checkOptional(in.AdditionalIncome, in.ShowAdditionalIncome, models.FieldAdditionalIncome, &fieldErrs)
	mortgage := v.checkOptional(in.Mortgage, in.ShowMortgage, models.FieldMortgage, &fieldErrs)
	otherCredits := v.checkOptional(in.OtherCredits, in.ShowOtherCredits, models.FieldOtherCredits, &fieldErrs)

	if len(fieldErrs) > 0 {
		return steps.Result{}, fieldErrs
	}

	if salaryOK {
		if err := v.checkAffordability(current, salary, additional, mortgage, otherCredits); err != nil {
			return steps.Result{}, err
		}
	}

	fields := models.Draft{
		Salary:               models.Float(salary),
		ShowAdditionalIncome: models.Bool(in.ShowAdditionalIncome),
		ShowMortgage:         models.Bool(in.ShowMortgage),
		ShowOtherCredits:     models.Bool(in.ShowOtherCredits),
	}
	var drops []models.Field

	if in.ShowAdditionalIncome {
		fields.AdditionalIncome = models.Float(additional)
	} else {
		drops = append(drops, models.FieldAdditionalIncome)
	}
	if in.ShowMortgage {
		fields.Mortgage = models.Float(mortgage)
	} else {
		drops = append(drops, models.FieldMortgage)
	}
	if in.ShowOtherCredits {
		fields.OtherCredits = models.Float(otherCredits)
	} else {
		drops = append(drops, models.FieldOtherCredits)
	}

	return steps.Result{Fields: fields, Drops: drops}, nil
}

func (v *Validator) checkSalary(in Input, fieldErrs *errors.FieldErrors) (float64, bool) {
	field := string(models.FieldSalary)

	if in.Salary == nil {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeMissingRequired,
			Message: "Required",
		})
		return 0, false
	}
	salary, ok := steps.Number(in.Salary)
	if !ok {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Salary must be a number",
		})
		return 0, false
	}
	if salary < 1 {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: "Required",
		})
		return 0, false
	}
	return salary, true
}

// checkOptional validates a toggled amount. Hidden amounts are ignored
// entirely; visible ones must be a non-negative number.
func (v *Validator) checkOptional(value interface{}, shown bool, field models.Field, fieldErrs *errors.FieldErrors) float64 {
	if !shown {
		return 0
	}
	if value == nil {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   string(field),
			Code:    errors.ErrCodeMissingRequired,
			Message: "Required",
		})
		return 0
	}
	amount, ok := steps.Number(value)
	if !ok {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   string(field),
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Must be a number",
		})
		return 0
	}
	if amount < 0 {
		*fieldErrs = append(*fieldErrs, errors.FieldError{
			Field:   string(field),
			Code:    errors.ErrCodeOutOfRange,
			Message: "Must be 0 or greater",
		})
		return 0
	}
	return amount
}

// checkAffordability enforces (income - expenses) * terms * 0.5 >= loanAmount
// against the loan figures already in the draft.
func (v *Validator) checkAffordability(current models.Draft, salary, additional, mortgage, otherCredits float64) error {
	var terms, loanAmount float64
	if current.Terms != nil {
		terms = float64(*current.Terms)
	}
	if current.LoanAmount != nil {
		loanAmount = *current.LoanAmount
	}

	income := salary + additional
	expenses := mortgage + otherCredits
	capacity := (income - expenses) * terms * affordabilityFactor

	if capacity < loanAmount {
		return errors.NewInsufficientCapacityError(
			fmt.Sprintf("capacity %.2f below requested %.2f", capacity, loanAmount))
	}
	return nil
}
