package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type patientMock struct {
	patients  []models.Patient
	lastQuery dto.PatientQuery
}

func (m *patientMock) List(_ context.Context, query dto.PatientQuery) ([]models.Patient, *models.Pagination, error) {
	m.lastQuery = query
	return m.patients, &models.Pagination{Page: 1, Limit: 20, Total: len(m.patients), TotalPages: 1}, nil
}

func (m *patientMock) Get(_ context.Context, id string) (*models.Patient, error) {
	for i := range m.patients {
		if m.patients[i].ID == id {
			return &m.patients[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "patient not found")
}

func (m *patientMock) Register(_ context.Context, req dto.RegisterPatientRequest) (*models.Patient, error) {
	return &models.Patient{ID: "patient-1", FirstName: req.FirstName, LastName: req.LastName}, nil
}

func TestListPatientsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &patientMock{patients: []models.Patient{{ID: "p1", FirstName: "Claire", LastName: "Dubois"}}}
	h := NewPatientHandler(mock)

	req, err := http.NewRequest(http.MethodGet, "/patients?search=dub", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dub", mock.lastQuery.Search)
}

func TestGetPatientEndpointNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPatientHandler(&patientMock{})

	req, err := http.NewRequest(http.MethodGet, "/patients/missing", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterPatientEndpoint(t *testing.T) {
	h := NewPatientHandler(&patientMock{})

	w := postJSON(t, h.Register, "/patients", []byte(`{"firstName":"Claire","lastName":"Dubois"}`))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterPatientEndpointBadJSON(t *testing.T) {
	h := NewPatientHandler(&patientMock{})

	w := postJSON(t, h.Register, "/patients", []byte(`{"firstName":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
