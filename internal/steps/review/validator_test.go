package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/models"
)

func TestValidate_RequiresConfirmation(t *testing.T) {
	v := New()

	_, err := v.Validate(context.Background(), models.Draft{}, []byte(`{"confirmed":false}`))
	se, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotConfirmed, se.Code)
	assert.Equal(t, "Please confirm before submitting.", se.Message)

	_, err = v.Validate(context.Background(), models.Draft{}, []byte(`{}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotConfirmed))
}

func TestValidate_ConfirmedPasses(t *testing.T) {
	res, err := New().Validate(context.Background(), models.Draft{}, []byte(`{"confirmed":true}`))
	require.NoError(t, err)
	assert.Equal(t, models.Draft{}, res.Fields)
	assert.Empty(t, res.Drops)
}

func TestValidate_RejectsMalformedPayload(t *testing.T) {
	_, err := New().Validate(context.Background(), models.Draft{}, []byte("confirmed"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidFormat))
}
