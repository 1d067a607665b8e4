package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
)

type schedulingMock struct {
	sequenceReq dto.ScheduleSequenceRequest
	planReq     dto.BulkRescheduleRequest
	executeReq  dto.ExecutePlanRequest
	planErr     error
}

func (m *schedulingMock) ScheduleSequence(_ context.Context, req dto.ScheduleSequenceRequest) (*dto.ScheduleSequenceResponse, error) {
	m.sequenceReq = req
	return &dto.ScheduleSequenceResponse{PatientID: req.PatientID, Booked: len(req.Steps)}, nil
}

func (m *schedulingMock) PlanBulkReschedule(_ context.Context, req dto.BulkRescheduleRequest) (*dto.BulkRescheduleResponse, error) {
	m.planReq = req
	if m.planErr != nil {
		return nil, m.planErr
	}
	return &dto.BulkRescheduleResponse{Plan: models.ReschedulePlan{ID: "plan-1", Strategy: "fallback"}}, nil
}

func (m *schedulingMock) ExecutePlan(_ context.Context, req dto.ExecutePlanRequest) (*dto.ExecutePlanResponse, error) {
	m.executeReq = req
	return &dto.ExecutePlanResponse{PlanID: req.PlanID, Summary: models.ExecutionSummary{Total: 1, Applied: 1}}, nil
}

type slotsMock struct {
	date string
}

func (m *slotsMock) FreeSlots(_ context.Context, date string, _ int) ([]string, error) {
	m.date = date
	return []string{"09:00", "09:30"}, nil
}

type analyzerMock struct {
	date string
}

func (m *analyzerMock) AnalyzeDay(_ context.Context, date string) (*dto.ScheduleAnalysisResponse, error) {
	m.date = date
	return &dto.ScheduleAnalysisResponse{Date: date, TotalAppointments: 2, MorningLoad: 2}, nil
}

func newSchedulingHandler(mock *schedulingMock, slots *slotsMock) *SchedulingHandler {
	return NewSchedulingHandler(mock, mock, slots, &analyzerMock{}, nil, nil)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)
	return w
}

func TestScheduleSequenceEndpoint(t *testing.T) {
	mock := &schedulingMock{}
	h := newSchedulingHandler(mock, &slotsMock{})
	payload := []byte(`{"patientId":"7c9e6679-7425-40de-944b-e07fc1f90ae7","startDate":"2025-03-10","steps":[{"treatment":"Dévitalisation","duration":"60 min"}]}`)

	w := postJSON(t, h.ScheduleSequence, "/schedule/sequence", payload)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "2025-03-10", mock.sequenceReq.StartDate)
	require.Len(t, mock.sequenceReq.Steps, 1)
}

func TestScheduleSequenceEndpointBadJSON(t *testing.T) {
	h := newSchedulingHandler(&schedulingMock{}, &slotsMock{})

	w := postJSON(t, h.ScheduleSequence, "/schedule/sequence", []byte(`{"patientId":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkRescheduleEndpoint(t *testing.T) {
	mock := &schedulingMock{}
	h := newSchedulingHandler(mock, &slotsMock{})
	payload := []byte(`{"blockedDates":["2025-03-10"],"reason":"congrès"}`)

	w := postJSON(t, h.PlanBulkReschedule, "/schedule/bulk-reschedule", payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"2025-03-10"}, mock.planReq.BlockedDates)

	var envelope struct {
		Data dto.BulkRescheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "plan-1", envelope.Data.Plan.ID)
}

func TestExecutePlanEndpoint(t *testing.T) {
	mock := &schedulingMock{}
	h := newSchedulingHandler(mock, &slotsMock{})
	payload := []byte(`{"planId":"plan-1","approved":true}`)

	w := postJSON(t, h.ExecutePlan, "/schedule/execute-plan", payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mock.executeReq.Approved)
	require.Equal(t, "plan-1", mock.executeReq.PlanID)
}

func TestFreeSlotsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	slots := &slotsMock{}
	h := newSchedulingHandler(&schedulingMock{}, slots)

	req, err := http.NewRequest(http.MethodGet, "/slots?date=2025-03-11&duration=30", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.FreeSlots(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2025-03-11", slots.date)
}

func TestFreeSlotsEndpointRequiresDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSchedulingHandler(&schedulingMock{}, &slotsMock{})

	req, err := http.NewRequest(http.MethodGet, "/slots", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.FreeSlots(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeTreatmentEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSchedulingHandler(&schedulingMock{}, &slotsMock{})

	req, err := http.NewRequest(http.MethodGet, "/treatments/analysis?treatment=extraction+dent+de+sagesse", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.AnalyzeTreatment(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.AnalyzeTreatmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "surgical", envelope.Data.Category)
	require.True(t, envelope.Data.AvoidFriday)
}

func TestAnalyzeScheduleEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	analyzer := &analyzerMock{}
	h := NewSchedulingHandler(&schedulingMock{}, &schedulingMock{}, &slotsMock{}, analyzer, nil, nil)

	req, err := http.NewRequest(http.MethodGet, "/schedule/analysis?date=2025-03-10", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.AnalyzeSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2025-03-10", analyzer.date)
}

func TestAnalyzeScheduleEndpointRequiresDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSchedulingHandler(&schedulingMock{}, &slotsMock{})

	req, err := http.NewRequest(http.MethodGet, "/schedule/analysis", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.AnalyzeSchedule(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
