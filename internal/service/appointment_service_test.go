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

type fakeAppointmentRepo struct {
	appointments []models.Appointment
	created      []*models.Appointment
}

func (f *fakeAppointmentRepo) List(_ context.Context, _ models.AppointmentFilter) ([]models.Appointment, int, error) {
	return f.appointments, len(f.appointments), nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *models.Appointment) error {
	appointment.ID = "created-1"
	f.created = append(f.created, appointment)
	return nil
}

func newAppointmentService(t *testing.T, repo *fakeAppointmentRepo, availability *fakeAvailability) *AppointmentService {
	t.Helper()
	return NewAppointmentService(repo, &fakePatientReader{patient: testPatient()}, availability, testPolicy(t), nil, nil)
}

func TestBookAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	availability := &fakeAvailability{table: map[string][]string{"2025-03-11": {"10:00"}}, taken: map[string]bool{}}
	svc := newAppointmentService(t, repo, availability)

	appointment, err := svc.Book(context.Background(), dto.CreateAppointmentRequest{
		PatientID: testPatient().ID,
		Date:      "2025-03-11",
		Time:      "10:00",
		Duration:  45,
		Treatment: "détartrage",
	})
	require.NoError(t, err)
	assert.Equal(t, "created-1", appointment.ID)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)
	require.Len(t, repo.created, 1)
}

func TestBookAppointmentSlotTaken(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	availability := &fakeAvailability{table: map[string][]string{}, taken: map[string]bool{}}
	svc := newAppointmentService(t, repo, availability)

	_, err := svc.Book(context.Background(), dto.CreateAppointmentRequest{
		PatientID: testPatient().ID,
		Date:      "2025-03-11",
		Time:      "10:00",
		Treatment: "détartrage",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestBookAppointmentUnknownPatient(t *testing.T) {
	svc := NewAppointmentService(&fakeAppointmentRepo{}, &fakePatientReader{err: sql.ErrNoRows},
		&fakeAvailability{table: map[string][]string{"2025-03-11": {"10:00"}}, taken: map[string]bool{}}, testPolicy(t), nil, nil)

	_, err := svc.Book(context.Background(), dto.CreateAppointmentRequest{
		PatientID: testPatient().ID,
		Date:      "2025-03-11",
		Time:      "10:00",
		Treatment: "détartrage",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetAppointmentNotFound(t *testing.T) {
	svc := newAppointmentService(t, &fakeAppointmentRepo{}, &fakeAvailability{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListAppointmentsPagination(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []models.Appointment{
		{ID: "a1", Date: "2025-03-10", Time: "09:00"},
		{ID: "a2", Date: "2025-03-10", Time: "10:00"},
	}}
	svc := newAppointmentService(t, repo, &fakeAvailability{})

	appointments, pagination, err := svc.List(context.Background(), dto.AppointmentQuery{})
	require.NoError(t, err)
	assert.Len(t, appointments, 2)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, 1, pagination.TotalPages)
}
