package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type appointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
}

type slotChecker interface {
	IsSlotFree(ctx context.Context, date, timeOfDay string, durationMinutes int) (bool, error)
}

// AppointmentService covers direct appointment booking and lookups.
type AppointmentService struct {
	repo         appointmentRepository
	patients     sequencePatientReader
	availability slotChecker
	policy       *models.SchedulingPolicy
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAppointmentService constructs the service.
func NewAppointmentService(
	repo appointmentRepository,
	patients sequencePatientReader,
	availability slotChecker,
	policy *models.SchedulingPolicy,
	validate *validator.Validate,
	logger *zap.Logger,
) *AppointmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		repo:         repo,
		patients:     patients,
		availability: availability,
		policy:       policy,
		validator:    validate,
		logger:       logger,
	}
}

// List returns appointments with pagination metadata.
func (s *AppointmentService) List(ctx context.Context, query dto.AppointmentQuery) ([]models.Appointment, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment query")
	}
	filter := models.AppointmentFilter{
		PatientID: query.PatientID,
		Date:      query.Date,
		Status:    query.Status,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	appointments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list appointments")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	pagination := &models.Pagination{
		Page:       page,
		Limit:      size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
	return appointments, pagination, nil
}

// Get fetches one appointment.
func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load appointment")
	}
	return appointment, nil
}

// Book places a single appointment after checking the slot is still free.
func (s *AppointmentService) Book(ctx context.Context, req dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}

	if _, err := s.patients.FindByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "patient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load patient")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = s.policy.DefaultVisitMinutes()
	}
	free, err := s.availability.IsSlotFree(ctx, req.Date, req.Time, duration)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slot is not available")
	}

	appointment := &models.Appointment{
		PatientID:       req.PatientID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		Treatment:       req.Treatment,
		Doctor:          req.Doctor,
		Notes:           req.Notes,
		Status:          models.AppointmentScheduled,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist appointment")
	}
	s.logger.Info("appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("slot", appointment.Slot()))
	return appointment, nil
}
