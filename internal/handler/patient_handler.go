package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
	"github.com/ncaillard/dentoplan-api/pkg/response"
)

type patientRegistry interface {
	List(ctx context.Context, query dto.PatientQuery) ([]models.Patient, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	Register(ctx context.Context, req dto.RegisterPatientRequest) (*models.Patient, error)
}

// PatientHandler exposes the patient registry endpoints.
type PatientHandler struct {
	service patientRegistry
}

// NewPatientHandler constructs the handler.
func NewPatientHandler(svc patientRegistry) *PatientHandler {
	return &PatientHandler{service: svc}
}

// List godoc
// @Summary List patients
// @Tags Patients
// @Produce json
// @Param search query string false "Name search term"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /patients [get]
func (h *PatientHandler) List(c *gin.Context) {
	var query dto.PatientQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid patient query"))
		return
	}
	patients, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patients, pagination)
}

// Get godoc
// @Summary Get a patient by ID
// @Tags Patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Envelope
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patient, nil)
}

// Register godoc
// @Summary Register a new patient
// @Tags Patients
// @Accept json
// @Produce json
// @Param payload body dto.RegisterPatientRequest true "Patient payload"
// @Success 201 {object} response.Envelope
// @Router /patients [post]
func (h *PatientHandler) Register(c *gin.Context) {
	var req dto.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid patient payload"))
		return
	}
	patient, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, patient)
}
