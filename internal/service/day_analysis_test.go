package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

func newDayAnalysis(t *testing.T, lister *fakeDayLister, finder *fakeSlotFinder) *DayAnalysisService {
	t.Helper()
	return NewDayAnalysisService(lister, finder, nil, testPolicy(t), nil)
}

func TestAnalyzeDayLoads(t *testing.T) {
	lister := &fakeDayLister{byDate: map[string][]models.Appointment{
		"2025-03-10": {
			{ID: "a1", Time: "09:00", Treatment: "extraction dent de sagesse", Status: models.AppointmentScheduled},
			{ID: "a2", Time: "10:30", Treatment: "détartrage", Status: models.AppointmentScheduled},
			{ID: "a3", Time: "14:00", Treatment: "couronne céramique", Status: models.AppointmentScheduled},
		},
	}}
	finder := &fakeSlotFinder{byDate: map[string][]string{"2025-03-10": {"16:00", "17:00"}}}
	svc := newDayAnalysis(t, lister, finder)

	analysis, err := svc.AnalyzeDay(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 3, analysis.TotalAppointments)
	assert.Equal(t, 2, analysis.MorningLoad)
	assert.Equal(t, 1, analysis.AfternoonLoad)
	assert.Equal(t, 1, analysis.SurgicalCount)
	assert.Equal(t, 2, analysis.RoutineCount)
	assert.Equal(t, []string{"16:00", "17:00"}, analysis.AvailableSlots)
	assert.Empty(t, analysis.Recommendations)
}

func TestAnalyzeDayRecommendations(t *testing.T) {
	lister := &fakeDayLister{byDate: map[string][]models.Appointment{
		"2025-03-10": {
			{ID: "a1", Time: "09:00", Treatment: "extraction", Status: models.AppointmentScheduled},
			{ID: "a2", Time: "09:30", Treatment: "implant", Status: models.AppointmentScheduled},
			{ID: "a3", Time: "10:00", Treatment: "dévitalisation", Status: models.AppointmentScheduled},
			{ID: "a4", Time: "10:30", Treatment: "contrôle", Status: models.AppointmentScheduled},
		},
	}}
	finder := &fakeSlotFinder{byDate: map[string][]string{}}
	svc := newDayAnalysis(t, lister, finder)

	analysis, err := svc.AnalyzeDay(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 4, analysis.MorningLoad)
	assert.Equal(t, 0, analysis.AfternoonLoad)
	assert.Equal(t, 3, analysis.SurgicalCount)
	require.Len(t, analysis.Recommendations, 2)
	assert.Contains(t, analysis.Recommendations[0], "morning is heavily loaded")
	assert.Contains(t, analysis.Recommendations[1], "high surgical load")
}

func TestAnalyzeDayRejectsBadDate(t *testing.T) {
	svc := newDayAnalysis(t, &fakeDayLister{}, &fakeSlotFinder{})

	_, err := svc.AnalyzeDay(context.Background(), "10/03/2025")
	require.Error(t, err)
}
