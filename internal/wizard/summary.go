// internal/wizard/summary.go

package wizard

import (
	"strconv"

	"loan-wizard/internal/models"
)

// Placeholder renders for fields the applicant never provided.
const Placeholder = "—"

type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summarize flattens the draft into the labelled rows shown on the review
// step. Every row is always present; absent fields show the placeholder.
func Summarize(d models.Draft) []SummaryRow {
	return []SummaryRow{
		{Label: "First Name", Value: stringValue(d.FirstName)},
		{Label: "Last Name", Value: stringValue(d.LastName)},
		{Label: "Date of Birth", Value: stringValue(d.DateOfBirth)},
		{Label: "Email", Value: stringValue(d.Email)},
		{Label: "Phone", Value: stringValue(d.Phone)},
		{Label: "Loan Amount", Value: floatValue(d.LoanAmount)},
		{Label: "Upfront Payment", Value: floatValue(d.UpfrontPayment)},
		{Label: "Terms (months)", Value: intValue(d.Terms)},
		{Label: "Salary", Value: floatValue(d.Salary)},
		{Label: "Additional Income", Value: floatValue(d.AdditionalIncome)},
		{Label: "Mortgage", Value: floatValue(d.Mortgage)},
		{Label: "Other Credits", Value: floatValue(d.OtherCredits)},
	}
}

func stringValue(v *string) string {
	if v == nil {
		return Placeholder
	}
	return *v
}

func floatValue(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intValue(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}
