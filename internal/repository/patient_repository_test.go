package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

func TestPatientRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewPatientRepository(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "birth_date", "created_at", "updated_at"}).
		AddRow("p1", "Claire", "Dubois", "claire@example.com", "0601020304", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, first_name, last_name, email, phone, birth_date, created_at, updated_at FROM patients WHERE id = $1")).
		WithArgs("p1").
		WillReturnRows(rows)

	patient, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Claire Dubois", patient.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAppointmentMock(t)
	defer cleanup()
	repo := NewPatientRepository(db)

	mock.ExpectExec("INSERT INTO patients").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	patient := &models.Patient{FirstName: "Claire", LastName: "Dubois"}
	err := repo.Create(context.Background(), patient)
	require.NoError(t, err)
	assert.NotEmpty(t, patient.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
