// internal/steps/personalinfo/validator.go

// Package personalinfo validates the first wizard step: applicant name and
// date of birth.
package personalinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/steps"
)

const StepName = "personal-info"

type Validator struct {
	now func() time.Time
}

func New() *Validator {
	return &Validator{now: time.Now}
}

// NewAt pins the validator's clock, for age checks in tests.
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

	switch {
	case strings.TrimSpace(in.FirstName) == "":
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldFirstName),
			Code:    errors.ErrCodeMissingRequired,
			Message: "First name is required",
		})
	case !firstNamePattern.MatchString(in.FirstName):
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldFirstName),
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Latin/German only, no spaces",
		})
	}

	switch {
	case strings.TrimSpace(in.LastName) == "":
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldLastName),
			Code:    errors.ErrCodeMissingRequired,
			Message: "Last name is required",
		})
	case !lastNamePattern.MatchString(in.LastName):
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldLastName),
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Latin/German letters only",
		})
	}

	if err := v.checkAge(in.DateOfBirth); err != nil {
		fieldErrs = append(fieldErrs, *err)
	}

	if len(fieldErrs) > 0 {
		return steps.Result{}, fieldErrs
	}

	return steps.Result{
		Fields: models.Draft{
			FirstName:   models.String(in.FirstName),
			LastName:    models.String(in.LastName),
			DateOfBirth: models.String(in.DateOfBirth),
		},
	}, nil
}

func (v *Validator) checkAge(dob string) *errors.FieldError {
	field := string(models.FieldDateOfBirth)

	if strings.TrimSpace(dob) == "" {
		return &errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeMissingRequired,
			Message: "Date of birth is required",
		}
	}

	born, err := time.Parse(models.DateLayout, dob)
	if err != nil {
		return &errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeInvalidFormat,
			Message: "Date of birth must be YYYY-MM-DD",
		}
	}

	age := wholeYears(born, v.now())
	if age < MinAge || age > MaxAge {
		return &errors.FieldError{
			Field:   field,
			Code:    errors.ErrCodeOutOfRange,
			Message: fmt.Sprintf("Age must be between %d and %d", MinAge, MaxAge),
		}
	}
	return nil
}

// wholeYears counts completed calendar years between born and now.
func wholeYears(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}
