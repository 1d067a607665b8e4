package models

import "time"

// Layouts shared by every component exchanging calendar values.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AppointmentStatus enumerates the lifecycle states of a booking.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentBlocked   AppointmentStatus = "blocked"
	AppointmentEmergency AppointmentStatus = "emergency"
)

// Appointment is a booked visit. Date and Time are kept as the wire strings
// ("2006-01-02" / "15:04") every planner and the slot computation exchange.
type Appointment struct {
	ID              string            `db:"id" json:"id"`
	PatientID       string            `db:"patient_id" json:"patient_id"`
	Date            string            `db:"appointment_date" json:"date"`
	Time            string            `db:"appointment_time" json:"time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Treatment       string            `db:"treatment_type" json:"treatment"`
	Doctor          string            `db:"doctor" json:"doctor"`
	Notes           string            `db:"notes" json:"notes"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// Slot renders the "date at time" string used in decisions and execution results.
func (a *Appointment) Slot() string {
	return a.Date + " " + a.Time
}

// AppointmentFilter describes query params for listing appointments.
type AppointmentFilter struct {
	PatientID string
	Date      string
	Status    string
	Page      int
	PageSize  int
}
