package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	"github.com/ncaillard/dentoplan-api/internal/oracle"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type rescheduleAppointmentRepo interface {
	ListByDates(ctx context.Context, dates []string) ([]models.Appointment, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateSchedule(ctx context.Context, id, date, timeOfDay string) (int64, error)
}

type reschedulePatientReader interface {
	FindByID(ctx context.Context, id string) (*models.Patient, error)
}

type availabilityReader interface {
	IsSlotFree(ctx context.Context, date, timeOfDay string, durationMinutes int) (bool, error)
	FreeSlotTable(ctx context.Context, from time.Time, days, durationMinutes int, exclude map[string]bool) (map[string][]string, error)
}

const (
	strategyOracle   = "oracle"
	strategyFallback = "fallback"
)

// RescheduleService plans and executes bulk relocations when the practice
// blocks days. Planning produces an approval-pending plan; nothing touches
// the calendar until ExecutePlan receives an explicit approval. Oracle
// suggestions are advisory and re-checked against live availability both at
// planning and at execution time.
type RescheduleService struct {
	appointments  rescheduleAppointmentRepo
	patients      reschedulePatientReader
	availability  availabilityReader
	oracle        oracle.Oracle
	store         PlanStore
	policy        *models.SchedulingPolicy
	lookaheadDays int
	now           func() time.Time
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewRescheduleService wires bulk rescheduling. A nil oracle switches the
// planner to the deterministic fallback strategy.
func NewRescheduleService(
	appointments rescheduleAppointmentRepo,
	patients reschedulePatientReader,
	availability availabilityReader,
	planOracle oracle.Oracle,
	store PlanStore,
	policy *models.SchedulingPolicy,
	lookaheadDays int,
	validate *validator.Validate,
	logger *zap.Logger,
) *RescheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookaheadDays <= 0 {
		lookaheadDays = 14
	}
	return &RescheduleService{
		appointments:  appointments,
		patients:      patients,
		availability:  availability,
		oracle:        planOracle,
		store:         store,
		policy:        policy,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
		validator:     validate,
		logger:        logger,
	}
}

// PlanBulkReschedule builds a relocation plan for every appointment booked on
// the blocked dates and parks it in the plan store pending approval.
func (s *RescheduleService) PlanBulkReschedule(ctx context.Context, req dto.BulkRescheduleRequest) (*dto.BulkRescheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}

	blocked := make(map[string]bool, len(req.BlockedDates))
	for _, date := range req.BlockedDates {
		blocked[date] = true
	}

	affected, err := s.appointments.ListByDates(ctx, req.BlockedDates)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load affected appointments")
	}

	lookahead := req.LookaheadDays
	if lookahead <= 0 {
		lookahead = s.lookaheadDays
	}
	// Relocation candidates come from the whole lookahead window starting
	// today, not from the blocked dates onward.
	table, err := s.availability.FreeSlotTable(ctx, s.now(), lookahead, s.policy.DefaultVisitMinutes(), blocked)
	if err != nil {
		return nil, err
	}

	recommendations := s.recommend(ctx, req.BlockedDates, affected, table)
	decisions := s.validateRecommendations(ctx, affected, blocked, recommendations)

	stats := models.PlanStats{Total: len(decisions)}
	affectedDates := make(map[string]bool)
	for _, decision := range decisions {
		if decision.Status == models.DecisionReady {
			stats.Successful++
			affectedDates[decision.ProposedDate] = true
		} else {
			stats.Failed++
		}
	}
	for date := range affectedDates {
		stats.AffectedDates = append(stats.AffectedDates, date)
	}
	sort.Strings(stats.AffectedDates)

	strategy := strategyFallback
	if s.oracle != nil && recommendations.fromOracle {
		strategy = strategyOracle
	}
	plan := &models.ReschedulePlan{
		ID:             uuid.NewString(),
		Decisions:      decisions,
		Stats:          stats,
		Strategy:       strategy,
		ExecutionReady: stats.Total > 0 && stats.Successful > 0,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("reschedule plan built",
		zap.String("plan_id", plan.ID),
		zap.String("strategy", strategy),
		zap.Int("total", stats.Total),
		zap.Int("successful", stats.Successful),
		zap.Int("failed", stats.Failed))
	return &dto.BulkRescheduleResponse{Plan: *plan}, nil
}

type recommendationSet struct {
	byAppointment map[string]oracle.Recommendation
	fromOracle    bool
}

// recommend asks the oracle first and falls back to flattening the free slot
// table one-to-one when the oracle is absent or unusable.
func (s *RescheduleService) recommend(ctx context.Context, blockedDates []string, affected []models.Appointment, table map[string][]string) recommendationSet {
	if s.oracle != nil {
		rc := oracle.RescheduleContext{
			BlockedDates:  blockedDates,
			FreeSlots:     table,
			PolicySummary: s.policy.Summary(),
		}
		for _, appointment := range affected {
			name := ""
			if patient, err := s.patients.FindByID(ctx, appointment.PatientID); err == nil {
				name = patient.FullName()
			}
			rc.Appointments = append(rc.Appointments, oracle.AffectedAppointment{
				ID:          appointment.ID,
				PatientName: name,
				Treatment:   appointment.Treatment,
				Date:        appointment.Date,
				Time:        appointment.Time,
				Duration:    appointment.DurationMinutes,
			})
		}
		recs, err := s.oracle.Recommend(ctx, rc)
		if err == nil {
			set := recommendationSet{byAppointment: make(map[string]oracle.Recommendation, len(recs)), fromOracle: true}
			for _, rec := range recs {
				set.byAppointment[rec.AppointmentID] = rec
			}
			return set
		}
		s.logger.Warn("oracle unavailable, using fallback placement", zap.Error(err))
	}

	// Deterministic fallback: earliest free slots, one per appointment, in
	// calendar order.
	dates := make([]string, 0, len(table))
	for date := range table {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	set := recommendationSet{byAppointment: make(map[string]oracle.Recommendation, len(affected))}
	next := 0
	for _, date := range dates {
		for _, slot := range table[date] {
			if next >= len(affected) {
				return set
			}
			set.byAppointment[affected[next].ID] = oracle.Recommendation{
				AppointmentID: affected[next].ID,
				NewDate:       date,
				NewTime:       slot,
				Confidence:    0.5,
				Rationale:     "earliest free slot after blocked period",
			}
			next++
		}
	}
	return set
}

// validateRecommendations turns raw suggestions into decisions, verifying
// each proposed slot against live availability.
func (s *RescheduleService) validateRecommendations(ctx context.Context, affected []models.Appointment, blocked map[string]bool, recs recommendationSet) []models.SchedulingDecision {
	decisions := make([]models.SchedulingDecision, 0, len(affected))
	for _, appointment := range affected {
		decision := models.SchedulingDecision{
			AppointmentID: appointment.ID,
			Treatment:     appointment.Treatment,
			CurrentSlot:   appointment.Slot(),
		}
		if patient, err := s.patients.FindByID(ctx, appointment.PatientID); err == nil {
			decision.PatientName = patient.FullName()
		}

		rec, ok := recs.byAppointment[appointment.ID]
		if !ok {
			decision.Status = models.DecisionNoSlots
			decision.Rationale = "no free slot available in the lookahead window"
			decisions = append(decisions, decision)
			continue
		}

		decision.ProposedDate = rec.NewDate
		decision.ProposedTime = rec.NewTime
		decision.Confidence = rec.Confidence
		decision.Rationale = rec.Rationale

		switch {
		case blocked[rec.NewDate]:
			decision.Status = models.DecisionSlotNotAvailable
			decision.Rationale = "proposed slot falls on a blocked date"
		default:
			free, err := s.availability.IsSlotFree(ctx, rec.NewDate, rec.NewTime, appointment.DurationMinutes)
			if err != nil || !free {
				decision.Status = models.DecisionSlotNotAvailable
				decision.Rationale = "proposed slot is not available"
			} else {
				decision.Status = models.DecisionReady
			}
		}
		decisions = append(decisions, decision)
	}
	return decisions
}

// ExecutePlan applies an approved plan. Every decision is re-validated just
// before its write; a slot taken since planning fails that decision alone.
func (s *RescheduleService) ExecutePlan(ctx context.Context, req dto.ExecutePlanRequest) (*dto.ExecutePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid execution payload")
	}
	if !req.Approved {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "plan must be explicitly approved before execution")
	}

	plan, err := s.store.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.ExecutionReady {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "plan has no executable decisions")
	}

	response := &dto.ExecutePlanResponse{PlanID: plan.ID}
	for _, decision := range plan.Decisions {
		result := models.ExecutionResult{AppointmentID: decision.AppointmentID}

		if decision.Status != models.DecisionReady {
			result.Outcome = models.ExecutionFailed
			result.Message = "decision was not validated for execution"
			response.Results = append(response.Results, result)
			continue
		}

		appointment, err := s.appointments.FindByID(ctx, decision.AppointmentID)
		if err != nil {
			result.Outcome = models.ExecutionFailed
			result.Message = "appointment no longer exists"
			response.Results = append(response.Results, result)
			continue
		}
		result.OldSlot = appointment.Slot()

		free, err := s.availability.IsSlotFree(ctx, decision.ProposedDate, decision.ProposedTime, appointment.DurationMinutes)
		if err != nil || !free {
			result.Outcome = models.ExecutionFailed
			result.Message = "slot was taken since planning"
			response.Results = append(response.Results, result)
			continue
		}

		rows, err := s.appointments.UpdateSchedule(ctx, decision.AppointmentID, decision.ProposedDate, decision.ProposedTime)
		if err != nil {
			result.Outcome = models.ExecutionFailed
			result.Message = "update failed"
			s.logger.Error("appointment update failed",
				zap.String("appointment_id", decision.AppointmentID),
				zap.Error(err))
			response.Results = append(response.Results, result)
			continue
		}
		if rows == 0 {
			result.Outcome = models.ExecutionFailed
			result.Message = "appointment was modified concurrently"
			response.Results = append(response.Results, result)
			continue
		}

		result.Outcome = models.ExecutionApplied
		result.Message = "appointment moved"
		result.NewSlot = decision.ProposedSlot()
		response.Results = append(response.Results, result)
	}

	for _, result := range response.Results {
		response.Summary.Total++
		if result.Outcome == models.ExecutionApplied {
			response.Summary.Applied++
		} else {
			response.Summary.Failed++
		}
	}

	// A consumed plan cannot be executed twice.
	if err := s.store.Delete(ctx, plan.ID); err != nil {
		s.logger.Warn("failed to delete executed plan", zap.String("plan_id", plan.ID), zap.Error(err))
	}

	s.logger.Info("reschedule plan executed",
		zap.String("plan_id", plan.ID),
		zap.Int("applied", response.Summary.Applied),
		zap.Int("failed", response.Summary.Failed))
	return response, nil
}
