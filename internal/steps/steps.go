// internal/steps/steps.go

// Package steps defines the contract shared by the per-step validators and
// the coercion helpers for values decoded from JSON.
package steps

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"loan-wizard/internal/models"
)

// Result is the outcome of a successful step validation: the fields to merge
// into the draft and the fields to remove from it.
type Result struct {
	Fields models.Draft
	Drops  []models.Field
}

// Validator checks one step's submission against the current draft.
// A rejection is either errors.FieldErrors (per-field problems) or a
// *errors.StandardError (a rule spanning the whole step).
type Validator interface {
	Name() string
	Validate(ctx context.Context, current models.Draft, raw []byte) (Result, error)
}

// Number coerces a decoded JSON value into a float64. Accepts JSON numbers
// and numeric strings, mirroring what lenient form clients send.
func Number(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Integer coerces a decoded JSON value into an int, rejecting fractional
// numbers.
func Integer(v interface{}) (int, bool) {
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
