package dto

import "github.com/ncaillard/dentoplan-api/internal/models"

// TreatmentStepRequest is one step of a treatment plan as submitted after
// consultation. Duration and delay are free text ("45 min", "2 semaines").
type TreatmentStepRequest struct {
	Treatment string `json:"treatment" validate:"required"`
	Duration  string `json:"duration"`
	Delay     string `json:"delay"`
	Doctor    string `json:"doctor"`
	Notes     string `json:"notes"`
}

// ScheduleSequenceRequest books a full ordered treatment plan for a patient.
type ScheduleSequenceRequest struct {
	PatientID     string                 `json:"patientId" validate:"required,uuid"`
	StartDate     string                 `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime string                 `json:"preferredTime" validate:"omitempty,oneof=morning afternoon any"`
	Steps         []TreatmentStepRequest `json:"steps" validate:"required,min=1,dive"`
}

// ScheduledVisit is one placed (or unplaced) visit of a sequence.
type ScheduledVisit struct {
	Step          int     `json:"step"`
	Treatment     string  `json:"treatment"`
	AppointmentID string  `json:"appointmentId,omitempty"`
	Date          string  `json:"date,omitempty"`
	Time          string  `json:"time,omitempty"`
	Duration      int     `json:"durationMinutes"`
	Doctor        string  `json:"doctor,omitempty"`
	Confidence    float64 `json:"confidence"`
	Rationale     string  `json:"rationale,omitempty"`
	Status        string  `json:"status"`
}

// ScheduleSequenceResponse returns the whole booked sequence.
type ScheduleSequenceResponse struct {
	PatientID string           `json:"patientId"`
	Visits    []ScheduledVisit `json:"visits"`
	Booked    int              `json:"booked"`
	Unplaced  int              `json:"unplaced"`
}

// BulkRescheduleRequest asks for a relocation plan for every appointment on
// the blocked dates.
type BulkRescheduleRequest struct {
	BlockedDates  []string `json:"blockedDates" validate:"required,min=1,dive,datetime=2006-01-02"`
	Reason        string   `json:"reason"`
	LookaheadDays int      `json:"lookaheadDays" validate:"omitempty,min=1,max=60"`
}

// BulkRescheduleResponse wraps the pending plan awaiting approval.
type BulkRescheduleResponse struct {
	Plan models.ReschedulePlan `json:"plan"`
}

// ExecutePlanRequest applies a previously returned plan. Approved must be
// explicitly true; plans are never executed implicitly.
type ExecutePlanRequest struct {
	PlanID   string `json:"planId" validate:"required"`
	Approved bool   `json:"approved"`
}

// ExecutePlanResponse reports the per-appointment outcomes.
type ExecutePlanResponse struct {
	PlanID  string                   `json:"planId"`
	Results []models.ExecutionResult `json:"results"`
	Summary models.ExecutionSummary  `json:"summary"`
}

// SlotQuery filters the free slot listing.
type SlotQuery struct {
	Date     string `form:"date" validate:"required,datetime=2006-01-02"`
	Duration int    `form:"duration" validate:"omitempty,min=5,max=480"`
}

// SlotsResponse lists bookable start times for one date.
type SlotsResponse struct {
	Date     string   `json:"date"`
	Duration int      `json:"durationMinutes"`
	Slots    []string `json:"slots"`
}

// ScheduleAnalysisResponse summarises the load of one clinic day.
type ScheduleAnalysisResponse struct {
	Date              string   `json:"date"`
	TotalAppointments int      `json:"totalAppointments"`
	MorningLoad       int      `json:"morningLoad"`
	AfternoonLoad     int      `json:"afternoonLoad"`
	SurgicalCount     int      `json:"surgicalCount"`
	RoutineCount      int      `json:"routineCount"`
	AvailableSlots    []string `json:"availableSlots"`
	Recommendations   []string `json:"recommendations"`
}

// AnalyzeTreatmentRequest classifies a treatment label.
type AnalyzeTreatmentRequest struct {
	Treatment string `form:"treatment" json:"treatment" validate:"required"`
}

// AnalyzeTreatmentResponse returns the derived scheduling profile.
type AnalyzeTreatmentResponse struct {
	Treatment      string `json:"treatment"`
	Category       string `json:"category"`
	PreferredTime  string `json:"preferredTime"`
	BufferMinutes  int    `json:"bufferMinutes"`
	MinSpacingDays int    `json:"minSpacingDays"`
	MaxSpacingDays int    `json:"maxSpacingDays"`
	AvoidFriday    bool   `json:"avoidFriday"`
}

// AppointmentQuery filters the appointment listing.
type AppointmentQuery struct {
	PatientID string `form:"patientId" validate:"omitempty,uuid"`
	Date      string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status" validate:"omitempty,oneof=scheduled cancelled blocked emergency"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// CreateAppointmentRequest books a single visit directly.
type CreateAppointmentRequest struct {
	PatientID string `json:"patientId" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Duration  int    `json:"durationMinutes" validate:"omitempty,min=5,max=480"`
	Treatment string `json:"treatment" validate:"required"`
	Doctor    string `json:"doctor"`
	Notes     string `json:"notes"`
}
