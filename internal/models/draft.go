// internal/models/draft.go
package models

import "time"

// DateLayout is the wire format for the date of birth field.
const DateLayout = "2006-01-02"

// Field names a draft key, as it appears in the persisted record.
type Field string

const (
	FieldFirstName        Field = "firstName"
	FieldLastName         Field = "lastName"
	FieldDateOfBirth      Field = "dateOfBirth"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldLoanAmount       Field = "loanAmount"
	FieldUpfrontPayment   Field = "upfrontPayment"
	FieldTerms            Field = "terms"
	FieldSalary           Field = "salary"
	FieldAdditionalIncome Field = "additionalIncome"
	FieldMortgage         Field = "mortgage"
	FieldOtherCredits     Field = "otherCredits"
)

// Draft is the accumulating answer set for one wizard session. Every field is
// pointer-typed so that "never entered" is distinct from a zero value; nil
// fields are omitted from the persisted record.
type Draft struct {
	// step 1: personal info
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`

	// step 2: contact details
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	// step 3: loan request
	LoanAmount     *float64 `json:"loanAmount,omitempty"`
	UpfrontPayment *float64 `json:"upfrontPayment,omitempty"`
	Terms          *int     `json:"terms,omitempty"`

	// step 4: financial info
	Salary           *float64 `json:"salary,omitempty"`
	AdditionalIncome *float64 `json:"additionalIncome,omitempty"`
	Mortgage         *float64 `json:"mortgage,omitempty"`
	OtherCredits     *float64 `json:"otherCredits,omitempty"`

	// Inclusion flags for the optional financial fields. A false flag means
	// the paired value was deliberately excluded on the last save, which is
	// not the same as the value never having been entered.
	ShowAdditionalIncome *bool `json:"showAdditionalIncome,omitempty"`
	ShowMortgage         *bool `json:"showMortgage,omitempty"`
	ShowOtherCredits     *bool `json:"showOtherCredits,omitempty"`
}

// Merge overlays the non-nil fields of partial onto d and returns the result.
// Fields listed in drops are removed regardless of either side.
func (d Draft) Merge(partial Draft, drops ...Field) Draft {
	out := d
	if partial.FirstName != nil {
		out.FirstName = partial.FirstName
	}
	if partial.LastName != nil {
		out.LastName = partial.LastName
	}
	if partial.DateOfBirth != nil {
		out.DateOfBirth = partial.DateOfBirth
	}
	if partial.Email != nil {
		out.Email = partial.Email
	}
	if partial.Phone != nil {
		out.Phone = partial.Phone
	}
	if partial.LoanAmount != nil {
		out.LoanAmount = partial.LoanAmount
	}
	if partial.UpfrontPayment != nil {
		out.UpfrontPayment = partial.UpfrontPayment
	}
	if partial.Terms != nil {
		out.Terms = partial.Terms
	}
	if partial.Salary != nil {
		out.Salary = partial.Salary
	}
	if partial.AdditionalIncome != nil {
		out.AdditionalIncome = partial.AdditionalIncome
	}
	if partial.Mortgage != nil {
		out.Mortgage = partial.Mortgage
	}
	if partial.OtherCredits != nil {
		out.OtherCredits = partial.OtherCredits
	}
	if partial.ShowAdditionalIncome != nil {
		out.ShowAdditionalIncome = partial.ShowAdditionalIncome
	}
	if partial.ShowMortgage != nil {
		out.ShowMortgage = partial.ShowMortgage
	}
	if partial.ShowOtherCredits != nil {
		out.ShowOtherCredits = partial.ShowOtherCredits
	}
	for _, f := range drops {
		switch f {
		case FieldFirstName:
			out.FirstName = nil
		case FieldLastName:
			out.LastName = nil
		case FieldDateOfBirth:
			out.DateOfBirth = nil
		case FieldEmail:
			out.Email = nil
		case FieldPhone:
			out.Phone = nil
		case FieldLoanAmount:
			out.LoanAmount = nil
		case FieldUpfrontPayment:
			out.UpfrontPayment = nil
		case FieldTerms:
			out.Terms = nil
		case FieldSalary:
			out.Salary = nil
		case FieldAdditionalIncome:
			out.AdditionalIncome = nil
		case FieldMortgage:
			out.Mortgage = nil
		case FieldOtherCredits:
			out.OtherCredits = nil
		}
	}
	return out
}

// AgeAt returns the applicant's whole-year age at the given instant, derived
// from the stored date of birth. The year count is decremented when now's
// month/day precedes the birth month/day. Returns 0, false when the date of
// birth is unset or malformed.
func (d Draft) AgeAt(now time.Time) (int, bool) {
	if d.DateOfBirth == nil {
		return 0, false
	}
	dob, err := time.Parse(DateLayout, *d.DateOfBirth)
	if err != nil {
		return 0, false
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years, true
}

// Pointer helpers for building partial drafts.

func String(v string) *string  { return &v }
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func Bool(v bool) *bool        { return &v }
