// internal/steps/loanrequest/config.go

package loanrequest

const (
	MinLoanAmount = 10000
	MaxLoanAmount = 70000

	MinTermMonths = 10
	MaxTermMonths = 30

	// applicant age plus term in years must stay below this
	MaxAgeAtMaturity = 80
)
