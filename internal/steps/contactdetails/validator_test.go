package contactdetails

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
)

func validate(t *testing.T, in Input) error {
	t.Helper()
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	_, err = New().Validate(context.Background(), models.Draft{}, raw)
	return err
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{name: "simple address", input: Input{Email: "ada@example.com", Phone: "+4915123456789"}},
		{name: "plus tag in email", input: Input{Email: "ada+loans@example.co.uk", Phone: "+12025550123"}},
		{name: "ten digit phone", input: Input{Email: "a@b.io", Phone: "+1234567890"}},
		{name: "fifteen digit phone", input: Input{Email: "a@b.io", Phone: "+123456789012345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validate(t, tt.input))
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		field string
		code  errors.ErrorCode
	}{
		{name: "missing email", input: Input{Phone: "+4915123456789"}, field: "email", code: errors.ErrCodeMissingRequired},
		{name: "email without domain", input: Input{Email: "ada@", Phone: "+4915123456789"}, field: "email", code: errors.ErrCodeInvalidFormat},
		{name: "email without at sign", input: Input{Email: "ada.example.com", Phone: "+4915123456789"}, field: "email", code: errors.ErrCodeInvalidFormat},
		{name: "missing phone", input: Input{Email: "ada@example.com"}, field: "phone", code: errors.ErrCodeMissingRequired},
		{name: "phone without plus", input: Input{Email: "ada@example.com", Phone: "4915123456789"}, field: "phone", code: errors.ErrCodeInvalidFormat},
		{name: "phone too short", input: Input{Email: "ada@example.com", Phone: "+123456789"}, field: "phone", code: errors.ErrCodeInvalidFormat},
		{name: "phone too long", input: Input{Email: "ada@example.com", Phone: "+1234567890123456"}, field: "phone", code: errors.ErrCodeInvalidFormat},
		{name: "phone with spaces", input: Input{Email: "ada@example.com", Phone: "+49 151 2345"}, field: "phone", code: errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(t, tt.input)
			fieldErrs, ok := errors.AsFieldErrors(err)
			require.True(t, ok, "expected field errors, got %v", err)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
			assert.Equal(t, tt.code, fieldErrs[0].Code)
		})
	}
}

func TestValidate_TrimsEmail(t *testing.T) {
	raw, err := json.Marshal(Input{Email: "  ada@example.com  ", Phone: "+4915123456789"})
	require.NoError(t, err)

	res, err := New().Validate(context.Background(), models.Draft{}, raw)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", *res.Fields.Email)
}
