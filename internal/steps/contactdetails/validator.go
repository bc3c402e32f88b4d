// internal/steps/contactdetails/validator.go

// Package contactdetails validates the second wizard step: email address and
// E.164 phone number.
package contactdetails

import (
	"context"
	"encoding/json"
	"strings"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
	"loan-wizard/internal/steps"
)

const StepName = "contact-details"

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

	email := strings.TrimSpace(in.Email)
	if !emailRegex.MatchString(email) {
		code := errors.ErrCodeInvalidFormat
		if email == "" {
			code = errors.ErrCodeMissingRequired
		}
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldEmail),
			Code:    code,
			Message: "Enter a valid email",
		})
	}

	if !phoneRegex.MatchString(in.Phone) {
		code := errors.ErrCodeInvalidFormat
		if strings.TrimSpace(in.Phone) == "" {
			code = errors.ErrCodeMissingRequired
		}
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   string(models.FieldPhone),
			Code:    code,
			Message: "Must be E.164 format (+1234567890)",
		})
	}

	if len(fieldErrs) > 0 {
		return steps.Result{}, fieldErrs
	}

	return steps.Result{
		Fields: models.Draft{
			Email: models.String(email),
			Phone: models.String(in.Phone),
		},
	}, nil
}
