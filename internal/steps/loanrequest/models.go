// internal/steps/loanrequest/models.go

package loanrequest

// Input carries the loan-request step submission. Numeric fields stay
// untyped until validation so string-encoded numbers are accepted.
type Input struct {
	LoanAmount     interface{} `json:"loanAmount"`
	UpfrontPayment interface{} `json:"upfrontPayment"`
	Terms          interface{} `json:"terms"`
}
