package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

type fakeSlotFinder struct {
	byDate map[string][]string
}

func (f *fakeSlotFinder) FreeSlots(_ context.Context, date string, _ int) ([]string, error) {
	return f.byDate[date], nil
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return day
}

func TestPlanVisitMorningPreference(t *testing.T) {
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-10": {"09:00", "11:00", "14:00"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 14, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-10"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("dévitalisation"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DecisionProposed, decision.Status)
	assert.Equal(t, "2025-03-10", decision.ProposedDate)
	assert.Equal(t, "09:00", decision.ProposedTime)
	assert.InDelta(t, 1.0, decision.Confidence, 0.001)
}

func TestPlanVisitAfternoonPreference(t *testing.T) {
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-10": {"09:00", "13:30", "14:00", "16:00"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 14, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-10"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("détartrage"),
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", decision.ProposedTime)
}

func TestPlanVisitSurgicalSkipsFriday(t *testing.T) {
	// 2025-03-14 is a Friday with open slots; surgery must land on Monday.
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-14": {"09:00"},
		"2025-03-17": {"09:30"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 14, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-14"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("extraction dent de sagesse"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DecisionProposed, decision.Status)
	assert.Equal(t, "2025-03-17", decision.ProposedDate)
}

func TestPlanVisitWeekendTargetAdvancesToMonday(t *testing.T) {
	// 2025-03-15 is a Saturday.
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-15": {"09:00"},
		"2025-03-16": {"09:00"},
		"2025-03-17": {"10:00"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 14, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-15"),
		DurationMinutes: 30,
		Classification:  NewClassifier().Classify("détartrage"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-17", decision.ProposedDate)
	assert.Equal(t, "10:00", decision.ProposedTime)
}

func TestPlanVisitBoundedSearchGivesUp(t *testing.T) {
	planner := NewVisitPlanner(&fakeSlotFinder{byDate: map[string][]string{}}, testPolicy(t), 5, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-10"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("contrôle"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DecisionNoSlots, decision.Status)
	assert.Empty(t, decision.ProposedDate)
	assert.Zero(t, decision.Confidence)
}

func TestPlanVisitSkippedDaysDoNotConsumeBudget(t *testing.T) {
	// Target is a Friday surgery with a one-attempt budget. The Friday jump
	// and the empty Monday must still leave Tuesday reachable.
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-18": {"09:00"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 1, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-14"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("extraction"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DecisionProposed, decision.Status)
	assert.Equal(t, "2025-03-18", decision.ProposedDate)
}

func TestPlanVisitPreferenceOverride(t *testing.T) {
	finder := &fakeSlotFinder{byDate: map[string][]string{
		"2025-03-10": {"09:00", "14:00"},
	}}
	planner := NewVisitPlanner(finder, testPolicy(t), 14, nil)

	decision, err := planner.PlanVisit(context.Background(), PlanVisitRequest{
		TargetDate:      mustDate(t, "2025-03-10"),
		DurationMinutes: 60,
		Classification:  NewClassifier().Classify("dévitalisation"),
		PreferredTime:   models.PreferAfternoon,
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", decision.ProposedTime)
}
