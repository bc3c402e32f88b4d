// internal/steps/financialinfo/models.go

package financialinfo

// Input carries the financial-info step submission. The three show flags
// control whether the matching optional amount is part of the draft at all.
type Input struct {
	Salary               interface{} `json:"salary"`
	AdditionalIncome     interface{} `json:"additionalIncome"`
	Mortgage             interface{} `json:"mortgage"`
	OtherCredits         interface{} `json:"otherCredits"`
	ShowAdditionalIncome bool        `json:"showAdditionalIncome"`
	ShowMortgage         bool        `json:"showMortgage"`
	ShowOtherCredits     bool        `json:"showOtherCredits"`
}
