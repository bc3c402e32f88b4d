// internal/steps/personalinfo/config.go

package personalinfo

// Applicant age bounds, inclusive, measured in whole years at validation
// time.
const (
	MinAge = 18
	MaxAge = 79
)
