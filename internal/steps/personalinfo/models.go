// internal/steps/personalinfo/models.go

package personalinfo

import "regexp"

// Input carries the personal-info step submission.
type Input struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

var (
	// first names allow Latin and German letters, no spaces
	firstNamePattern = regexp.MustCompile(`^[A-Za-zÄäÖöÜüẞß]+$`)
	// last names additionally allow spaces for compound names
	lastNamePattern = regexp.MustCompile(`^[A-Za-zÄäÖöÜüẞß\s]+$`)
)
