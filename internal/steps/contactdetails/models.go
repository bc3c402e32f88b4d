// internal/steps/contactdetails/models.go

package contactdetails

import "regexp"

// Input carries the contact-details step submission.
type Input struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// E.164: leading plus, 10 to 15 digits
	phoneRegex = regexp.MustCompile(`^\+\d{10,15}$`)
)
