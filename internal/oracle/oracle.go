// Package oracle produces rescheduling suggestions from an external
// recommendation model. Its output is advisory: every suggestion is
// re-validated against live availability before it can reach the database.
package oracle

import "context"

// AffectedAppointment is the context snapshot of one appointment to relocate.
type AffectedAppointment struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Treatment   string `json:"treatment"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration_minutes"`
}

// RescheduleContext is the full situation serialized for the oracle: what is
// blocked, who is affected, and where free capacity exists.
type RescheduleContext struct {
	BlockedDates  []string              `json:"blocked_dates"`
	Appointments  []AffectedAppointment `json:"affected_appointments"`
	FreeSlots     map[string][]string   `json:"free_slots_by_date"`
	PolicySummary string                `json:"policy_summary"`
}

// Recommendation is one suggested relocation.
type Recommendation struct {
	AppointmentID string  `json:"appointment_id"`
	NewDate       string  `json:"new_date"`
	NewTime       string  `json:"new_time"`
	Confidence    float64 `json:"confidence"`
	Rationale     string  `json:"rationale"`
}

// Oracle proposes relocations for the affected appointments. Implementations
// must return an error rather than fabricate placements when the upstream
// model is unreachable or answers with something unusable.
type Oracle interface {
	Recommend(ctx context.Context, rc RescheduleContext) ([]Recommendation, error)
}
