package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  Step
	}{
		{route: "step-1", want: StepPersonal},
		{route: "step-2", want: StepContact},
		{route: "step-3", want: StepLoan},
		{route: "step-4", want: StepFinancial},
		{route: "step-5", want: StepReview},
		{route: "step-9", want: StepPersonal},
		{route: "", want: StepPersonal},
		{route: "checkout", want: StepPersonal},
	}

	for _, tt := range tests {
		t.Run("route "+tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, StepFromRoute(tt.route))
		})
	}
}

func TestStepRoutesRoundTrip(t *testing.T) {
	for _, step := range stepOrder {
		assert.Equal(t, step, StepFromRoute(step.Route()))
	}
}

func TestSubmittedHasNoRoute(t *testing.T) {
	assert.Empty(t, StepSubmitted.Route())
	assert.Equal(t, "submitted", StepSubmitted.Name())
}
