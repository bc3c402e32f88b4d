// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// draftSchema describes the shape of the persisted draft record. Anything
// that fails this check is treated as corrupt storage.
var draftSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"firstName":            map[string]interface{}{"type": "string"},
		"lastName":             map[string]interface{}{"type": "string"},
		"dateOfBirth":          map[string]interface{}{"type": "string"},
		"email":                map[string]interface{}{"type": "string"},
		"phone":                map[string]interface{}{"type": "string"},
		"loanAmount":           map[string]interface{}{"type": "number"},
		"upfrontPayment":       map[string]interface{}{"type": "number"},
		"terms":                map[string]interface{}{"type": "integer"},
		"salary":               map[string]interface{}{"type": "number"},
		"additionalIncome":     map[string]interface{}{"type": "number"},
		"mortgage":             map[string]interface{}{"type": "number"},
		"otherCredits":         map[string]interface{}{"type": "number"},
		"showAdditionalIncome": map[string]interface{}{"type": "boolean"},
		"showMortgage":         map[string]interface{}{"type": "boolean"},
		"showOtherCredits":     map[string]interface{}{"type": "boolean"},
	},
}

// CheckDraftShape validates raw persisted bytes against the draft schema.
func CheckDraftShape(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(draftSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("draft shape validation failed: %v", errs)
	}

	return nil
}
