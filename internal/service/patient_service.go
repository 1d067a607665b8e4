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
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type patientRepository interface {
	FindByID(ctx context.Context, id string) (*models.Patient, error)
	List(ctx context.Context, search string, page, size int) ([]models.Patient, int, error)
	Create(ctx context.Context, patient *models.Patient) error
}

// PatientService covers the patient registry the front desk works from.
type PatientService struct {
	repo      patientRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPatientService constructs the service.
func NewPatientService(repo patientRepository, validate *validator.Validate, logger *zap.Logger) *PatientService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatientService{repo: repo, validator: validate, logger: logger}
}

// List returns patients matching the search term with pagination metadata.
func (s *PatientService) List(ctx context.Context, query dto.PatientQuery) ([]models.Patient, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid patient query")
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	patients, total, err := s.repo.List(ctx, query.Search, page, size)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list patients")
	}
	pagination := &models.Pagination{
		Page:       page,
		Limit:      size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
	return patients, pagination, nil
}

// Get fetches one patient.
func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "patient not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load patient")
	}
	return patient, nil
}

// Register creates a patient record.
func (s *PatientService) Register(ctx context.Context, req dto.RegisterPatientRequest) (*models.Patient, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid patient payload")
	}

	patient := &models.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse(models.DateLayout, req.BirthDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid birth date")
		}
		patient.BirthDate = &birthDate
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist patient")
	}
	s.logger.Info("patient registered",
		zap.String("patient_id", patient.ID),
		zap.String("name", patient.FullName()))
	return patient, nil
}
