package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	"github.com/ncaillard/dentoplan-api/internal/models"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type fakePatientRepo struct {
	patients []models.Patient
	created  []*models.Patient
}

func (f *fakePatientRepo) FindByID(_ context.Context, id string) (*models.Patient, error) {
	for i := range f.patients {
		if f.patients[i].ID == id {
			return &f.patients[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePatientRepo) List(_ context.Context, _ string, _, _ int) ([]models.Patient, int, error) {
	return f.patients, len(f.patients), nil
}

func (f *fakePatientRepo) Create(_ context.Context, patient *models.Patient) error {
	patient.ID = "patient-1"
	f.created = append(f.created, patient)
	return nil
}

func TestRegisterPatient(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewPatientService(repo, nil, nil)

	patient, err := svc.Register(context.Background(), dto.RegisterPatientRequest{
		FirstName: "Claire",
		LastName:  "Dubois",
		Email:     "claire@example.com",
		BirthDate: "1988-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient-1", patient.ID)
	require.NotNil(t, patient.BirthDate)
	assert.Equal(t, "Claire Dubois", patient.FullName())
	require.Len(t, repo.created, 1)
}

func TestRegisterPatientRejectsBadPayload(t *testing.T) {
	svc := NewPatientService(&fakePatientRepo{}, nil, nil)

	_, err := svc.Register(context.Background(), dto.RegisterPatientRequest{FirstName: "Claire"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Register(context.Background(), dto.RegisterPatientRequest{
		FirstName: "Claire",
		LastName:  "Dubois",
		Email:     "not-an-email",
	})
	require.Error(t, err)
}

func TestListPatientsPagination(t *testing.T) {
	repo := &fakePatientRepo{patients: []models.Patient{
		{ID: "p1", FirstName: "Claire", LastName: "Dubois"},
		{ID: "p2", FirstName: "Marc", LastName: "Petit"},
	}}
	svc := NewPatientService(repo, nil, nil)

	patients, pagination, err := svc.List(context.Background(), dto.PatientQuery{})
	require.NoError(t, err)
	assert.Len(t, patients, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
	assert.Equal(t, 2, pagination.Total)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := NewPatientService(&fakePatientRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
