package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() PolicyParams {
	return PolicyParams{
		WorkingDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		OpenTime:    "09:00",
		CloseTime:   "18:00",
		LunchStart:  "12:00",
		LunchEnd:    "13:00",
	}
}

func TestNewSchedulingPolicyDefaults(t *testing.T) {
	policy, err := NewSchedulingPolicy(validParams())
	require.NoError(t, err)

	assert.Equal(t, 9*60, policy.OpenMinutes())
	assert.Equal(t, 18*60, policy.CloseMinutes())
	assert.Equal(t, 30, policy.SlotIntervalMinutes())
	assert.Equal(t, 60, policy.DefaultVisitMinutes())
	assert.Equal(t, policy.OpenMinutes(), policy.FirstBookableMinutes())
	assert.Equal(t, policy.CloseMinutes(), policy.LastBookableMinutes())
}

func TestNewSchedulingPolicyRejectsBadInput(t *testing.T) {
	params := validParams()
	params.WorkingDays = []string{"moonday"}
	_, err := NewSchedulingPolicy(params)
	assert.Error(t, err)

	params = validParams()
	params.CloseTime = "08:00"
	_, err = NewSchedulingPolicy(params)
	assert.Error(t, err)

	params = validParams()
	params.OpenTime = "9am"
	_, err = NewSchedulingPolicy(params)
	assert.Error(t, err)
}

func TestIsWorkingDay(t *testing.T) {
	policy, err := NewSchedulingPolicy(validParams())
	require.NoError(t, err)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, policy.IsWorkingDay(monday))
	assert.False(t, policy.IsWorkingDay(saturday))
}

func TestClockHelpers(t *testing.T) {
	minutes, err := ParseClock("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, minutes)
	assert.Equal(t, "14:30", FormatClock(minutes))

	_, err = ParseClock("25:99")
	assert.Error(t, err)
}

func TestPolicySummary(t *testing.T) {
	policy, err := NewSchedulingPolicy(validParams())
	require.NoError(t, err)

	summary := policy.Summary()
	assert.Contains(t, summary, "monday/tuesday/wednesday/thursday/friday")
	assert.Contains(t, summary, "09:00-18:00")
	assert.Contains(t, summary, "lunch 12:00-13:00")
}
