// internal/wizard/routes.go

package wizard

// Step identifies a wizard position. Steps are ordered; Submitted is
// terminal.
type Step int

const (
	StepPersonal Step = iota
	StepContact
	StepLoan
	StepFinancial
	StepReview
	StepSubmitted
)

var stepNames = map[Step]string{
	StepPersonal:  "personal-info",
	StepContact:   "contact-details",
	StepLoan:      "loan-request",
	StepFinancial: "financial-info",
	StepReview:    "review",
	StepSubmitted: "submitted",
}

var stepRoutes = map[Step]string{
	StepPersonal:  "step-1",
	StepContact:   "step-2",
	StepLoan:      "step-3",
	StepFinancial: "step-4",
	StepReview:    "step-5",
}

func (s Step) Name() string {
	return stepNames[s]
}

// Route returns the address segment for the step. Submitted has no route.
func (s Step) Route() string {
	return stepRoutes[s]
}

// StepFromRoute resolves an address segment to a step. Unknown segments fall
// back to the first step, so stale or mistyped addresses restart the wizard
// instead of erroring.
func StepFromRoute(route string) Step {
	for step, r := range stepRoutes {
		if r == route {
			return step
		}
	}
	return StepPersonal
}
