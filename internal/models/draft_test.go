package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AgeAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  string
		want int
	}{
		{name: "birthday earlier this year", dob: "1990-03-01", want: 36},
		{name: "birthday today", dob: "1990-06-15", want: 36},
		{name: "birthday later this year", dob: "1990-11-30", want: 35},
		{name: "day before birthday", dob: "1990-06-16", want: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Draft{DateOfBirth: String(tt.dob)}
			age, ok := d.AgeAt(now)
			require.True(t, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}

func TestDraft_AgeAtInvalid(t *testing.T) {
	_, ok := Draft{}.AgeAt(time.Now())
	assert.False(t, ok)

	_, ok = Draft{DateOfBirth: String("12.04.1990")}.AgeAt(time.Now())
	assert.False(t, ok)
}

func TestDraft_MergeOverlaysNonNil(t *testing.T) {
	base := Draft{
		FirstName: String("Ada"),
		LastName:  String("Lovelace"),
		Salary:    Float(3000),
	}

	merged := base.Merge(Draft{
		LastName: String("Byron"),
		Terms:    Int(15),
	})

	assert.Equal(t, "Ada", *merged.FirstName)
	assert.Equal(t, "Byron", *merged.LastName)
	assert.Equal(t, float64(3000), *merged.Salary)
	assert.Equal(t, 15, *merged.Terms)
}

func TestDraft_MergeDoesNotMutateReceiver(t *testing.T) {
	base := Draft{FirstName: String("Ada"), Mortgage: Float(800)}

	_ = base.Merge(Draft{FirstName: String("Grace")}, FieldMortgage)

	assert.Equal(t, "Ada", *base.FirstName)
	require.NotNil(t, base.Mortgage)
}

func TestDraft_MergeDrops(t *testing.T) {
	base := Draft{
		AdditionalIncome: Float(400),
		Mortgage:         Float(800),
		OtherCredits:     Float(120),
	}

	merged := base.Merge(Draft{}, FieldAdditionalIncome, FieldOtherCredits)

	assert.Nil(t, merged.AdditionalIncome)
	assert.Nil(t, merged.OtherCredits)
	require.NotNil(t, merged.Mortgage)
	assert.Equal(t, float64(800), *merged.Mortgage)
}

func TestDraft_MergeDropWinsOverOverlay(t *testing.T) {
	merged := Draft{}.Merge(Draft{Mortgage: Float(800)}, FieldMortgage)
	assert.Nil(t, merged.Mortgage)
}
