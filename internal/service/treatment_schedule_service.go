package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	"github.com/ncaillard/dentoplan-api/internal/parse"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type sequencePatientReader interface {
	FindByID(ctx context.Context, id string) (*models.Patient, error)
}

type appointmentCreator interface {
	Create(ctx context.Context, appointment *models.Appointment) error
}

type visitScheduler interface {
	PlanVisit(ctx context.Context, req PlanVisitRequest) (*models.SchedulingDecision, error)
}

// TreatmentScheduleService books an ordered treatment plan as a chain of
// appointments. Steps are placed in order; each target date derives from the
// previous placement plus the declared delay and the category's minimum
// spacing. An unplaceable step never aborts the sequence.
type TreatmentScheduleService struct {
	patients     sequencePatientReader
	appointments appointmentCreator
	planner      visitScheduler
	classifier   *Classifier
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewTreatmentScheduleService wires sequence booking.
func NewTreatmentScheduleService(
	patients sequencePatientReader,
	appointments appointmentCreator,
	planner visitScheduler,
	classifier *Classifier,
	validate *validator.Validate,
	logger *zap.Logger,
) *TreatmentScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &TreatmentScheduleService{
		patients:     patients,
		appointments: appointments,
		planner:      planner,
		classifier:   classifier,
		validator:    validate,
		logger:       logger,
	}
}

// ScheduleSequence books every step of the plan, in order.
func (s *TreatmentScheduleService) ScheduleSequence(ctx context.Context, req dto.ScheduleSequenceRequest) (*dto.ScheduleSequenceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sequence payload")
	}

	patient, err := s.patients.FindByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "patient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load patient")
	}

	anchor := time.Now().UTC().AddDate(0, 0, 1)
	if req.StartDate != "" {
		anchor, err = time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
		}
	}

	override := models.TimePreference(req.PreferredTime)
	response := &dto.ScheduleSequenceResponse{PatientID: req.PatientID}

	for i, step := range req.Steps {
		classification := s.classifier.Classify(step.Treatment)
		duration := parse.DurationMinutes(step.Duration) + classification.BufferMinutes

		target := anchor
		if i > 0 {
			// The declared delay wins over the category floor only when it
			// is longer; healing time is never shortened by free text.
			delay := parse.DelayDays(step.Delay)
			if delay < classification.MinSpacingDays {
				delay = classification.MinSpacingDays
			}
			target = anchor.AddDate(0, 0, delay)
		}

		decision, err := s.planner.PlanVisit(ctx, PlanVisitRequest{
			TargetDate:      target,
			DurationMinutes: duration,
			Classification:  classification,
			PreferredTime:   override,
		})
		if err != nil {
			return nil, err
		}

		visit := dto.ScheduledVisit{
			Step:       i + 1,
			Treatment:  step.Treatment,
			Duration:   duration,
			Doctor:     step.Doctor,
			Confidence: decision.Confidence,
			Rationale:  decision.Rationale,
			Status:     string(decision.Status),
		}

		if decision.Status == models.DecisionProposed {
			appointment := &models.Appointment{
				PatientID:       req.PatientID,
				Date:            decision.ProposedDate,
				Time:            decision.ProposedTime,
				DurationMinutes: duration,
				Treatment:       step.Treatment,
				Doctor:          step.Doctor,
				Notes:           step.Notes,
				Status:          models.AppointmentScheduled,
			}
			if err := s.appointments.Create(ctx, appointment); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist appointment")
			}
			visit.AppointmentID = appointment.ID
			visit.Date = decision.ProposedDate
			visit.Time = decision.ProposedTime
			visit.Status = string(models.AppointmentScheduled)
			response.Booked++

			anchor, err = time.Parse(models.DateLayout, decision.ProposedDate)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "parse proposed date")
			}
		} else {
			response.Unplaced++
			s.logger.Warn("treatment step left unplaced",
				zap.String("patient_id", req.PatientID),
				zap.String("patient", patient.FullName()),
				zap.Int("step", i+1),
				zap.String("treatment", step.Treatment))
			// Later steps keep counting from the intended date so the
			// chain's spacing stays meaningful.
			anchor = target
		}

		response.Visits = append(response.Visits, visit)
	}
	return response, nil
}
