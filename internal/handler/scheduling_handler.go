package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/service"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
	"github.com/ncaillard/dentoplan-api/pkg/response"
)

const maxSequenceSteps = 32

type sequenceScheduler interface {
	ScheduleSequence(ctx context.Context, req dto.ScheduleSequenceRequest) (*dto.ScheduleSequenceResponse, error)
}

type reschedulePlanner interface {
	PlanBulkReschedule(ctx context.Context, req dto.BulkRescheduleRequest) (*dto.BulkRescheduleResponse, error)
	ExecutePlan(ctx context.Context, req dto.ExecutePlanRequest) (*dto.ExecutePlanResponse, error)
}

type slotReader interface {
	FreeSlots(ctx context.Context, date string, durationMinutes int) ([]string, error)
}

type dayAnalyzer interface {
	AnalyzeDay(ctx context.Context, date string) (*dto.ScheduleAnalysisResponse, error)
}

// SchedulingHandler exposes the scheduling engine endpoints.
type SchedulingHandler struct {
	sequences  sequenceScheduler
	reschedule reschedulePlanner
	slots      slotReader
	analyzer   dayAnalyzer
	classifier *service.Classifier
	metrics    *service.MetricsService
}

// NewSchedulingHandler constructs the handler.
func NewSchedulingHandler(
	sequences sequenceScheduler,
	reschedule reschedulePlanner,
	slots slotReader,
	analyzer dayAnalyzer,
	classifier *service.Classifier,
	metrics *service.MetricsService,
) *SchedulingHandler {
	if classifier == nil {
		classifier = service.NewClassifier()
	}
	return &SchedulingHandler{
		sequences:  sequences,
		reschedule: reschedule,
		slots:      slots,
		analyzer:   analyzer,
		classifier: classifier,
		metrics:    metrics,
	}
}

// ScheduleSequence godoc
// @Summary Book a full treatment plan as an ordered appointment chain
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleSequenceRequest true "Treatment sequence payload"
// @Success 201 {object} response.Envelope
// @Router /schedule/sequence [post]
func (h *SchedulingHandler) ScheduleSequence(c *gin.Context) {
	var req dto.ScheduleSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sequence payload"))
		return
	}
	if len(req.Steps) > maxSequenceSteps {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "steps exceeds supported limit"))
		return
	}
	result, err := h.sequences.ScheduleSequence(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSequence(result.Booked, result.Unplaced)
	response.Created(c, result)
}

// PlanBulkReschedule godoc
// @Summary Build an approval-pending relocation plan for blocked dates
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.BulkRescheduleRequest true "Bulk reschedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/bulk-reschedule [post]
func (h *SchedulingHandler) PlanBulkReschedule(c *gin.Context) {
	var req dto.BulkRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}
	result, err := h.reschedule.PlanBulkReschedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordPlanBuilt(result.Plan.Strategy)
	response.JSON(c, http.StatusOK, result, nil)
}

// ExecutePlan godoc
// @Summary Execute an approved reschedule plan
// @Description Applies a plan previously returned by bulk-reschedule. The plan must be referenced by ID and explicitly approved.
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.ExecutePlanRequest true "Plan execution payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/execute-plan [post]
func (h *SchedulingHandler) ExecutePlan(c *gin.Context) {
	var req dto.ExecutePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid execution payload"))
		return
	}
	result, err := h.reschedule.ExecutePlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordExecution(result.Summary.Applied, result.Summary.Failed)
	response.JSON(c, http.StatusOK, result, nil)
}

// FreeSlots godoc
// @Summary List bookable start times for a date
// @Tags Scheduling
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int false "Visit duration in minutes"
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SchedulingHandler) FreeSlots(c *gin.Context) {
	var query dto.SlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot query"))
		return
	}
	if query.Date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	slots, err := h.slots.FreeSlots(c.Request.Context(), query.Date, query.Duration)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SlotsResponse{Date: query.Date, Duration: query.Duration, Slots: slots}, nil)
}

// AnalyzeSchedule godoc
// @Summary Summarise the load of one clinic day
// @Tags Scheduling
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /schedule/analysis [get]
func (h *SchedulingHandler) AnalyzeSchedule(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	analysis, err := h.analyzer.AnalyzeDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis, nil)
}

// AnalyzeTreatment godoc
// @Summary Classify a treatment label into its scheduling profile
// @Tags Scheduling
// @Produce json
// @Param treatment query string true "Treatment label"
// @Success 200 {object} response.Envelope
// @Router /treatments/analysis [get]
func (h *SchedulingHandler) AnalyzeTreatment(c *gin.Context) {
	label := c.Query("treatment")
	if label == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "treatment is required"))
		return
	}
	classification := h.classifier.Classify(label)
	response.JSON(c, http.StatusOK, dto.AnalyzeTreatmentResponse{
		Treatment:      label,
		Category:       string(classification.Category),
		PreferredTime:  string(classification.PreferredTime),
		BufferMinutes:  classification.BufferMinutes,
		MinSpacingDays: classification.MinSpacingDays,
		MaxSpacingDays: classification.MaxSpacingDays,
		AvoidFriday:    classification.AvoidFriday,
	}, nil)
}
