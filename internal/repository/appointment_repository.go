package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ncaillard/dentoplan-api/internal/models"
)

// AppointmentRepository manages persistence for appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `id, patient_id, to_char(appointment_date, 'YYYY-MM-DD') AS appointment_date,
        to_char(appointment_time, 'HH24:MI') AS appointment_time, duration_minutes, treatment_type, doctor, notes, status, created_at, updated_at`

// List returns appointments matching the provided filters, ordered by slot.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	base := "FROM appointments"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.PatientID != "" {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", len(args)+1))
		args = append(args, filter.PatientID)
	}
	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("appointment_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY appointment_date, appointment_time LIMIT %d OFFSET %d",
		appointmentColumns, base, size, offset)

	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}
	return appointments, total, nil
}

// FindByID fetches an appointment by ID.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	query := fmt.Sprintf("SELECT %s FROM appointments WHERE id = $1", appointmentColumns)
	var appointment models.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListByDate returns every non-cancelled appointment on a date, ordered by
// start time. Cancelled visits do not block slots.
func (r *AppointmentRepository) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments
        WHERE appointment_date = $1 AND status <> $2
        ORDER BY appointment_time`, appointmentColumns)
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, date, models.AppointmentCancelled); err != nil {
		return nil, fmt.Errorf("list appointments by date: %w", err)
	}
	return appointments, nil
}

// ListByDates returns every non-cancelled appointment on any of the dates.
func (r *AppointmentRepository) ListByDates(ctx context.Context, dates []string) ([]models.Appointment, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM appointments
        WHERE appointment_date IN (?) AND status <> ?
        ORDER BY appointment_date, appointment_time`, appointmentColumns), dates, models.AppointmentCancelled)
	if err != nil {
		return nil, fmt.Errorf("build dates query: %w", err)
	}
	query = r.db.Rebind(query)
	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("list appointments by dates: %w", err)
	}
	return appointments, nil
}

// Create inserts a new appointment record.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.NewString()
	}
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}
	now := time.Now().UTC()
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now
	const query = `INSERT INTO appointments (id, patient_id, appointment_date, appointment_time, duration_minutes, treatment_type, doctor, notes, status, created_at, updated_at)
        VALUES (:id, :patient_id, :appointment_date, :appointment_time, :duration_minutes, :treatment_type, :doctor, :notes, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, appointment); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// UpdateSchedule moves an appointment to a new date and time, returning the
// number of rows touched so callers can detect a concurrently removed record.
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, id, date, timeOfDay string) (int64, error) {
	const query = `UPDATE appointments SET appointment_date = $2, appointment_time = $3, updated_at = $4 WHERE id = $1 AND status <> $5`
	result, err := r.db.ExecContext(ctx, query, id, date, timeOfDay, time.Now().UTC(), models.AppointmentCancelled)
	if err != nil {
		return 0, fmt.Errorf("update appointment schedule: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update appointment schedule: %w", err)
	}
	return rows, nil
}

// UpdateStatus transitions an appointment's lifecycle state.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const query = `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}
