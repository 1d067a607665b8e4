package models

import "time"

// DecisionStatus tracks a scheduling decision through validation.
type DecisionStatus string

const (
	DecisionProposed         DecisionStatus = "proposed"
	DecisionReady            DecisionStatus = "ready_for_execution"
	DecisionSlotNotAvailable DecisionStatus = "slot_not_available"
	DecisionNoSlots          DecisionStatus = "no_slots_available"
)

// SchedulingDecision is a proposed assignment of an appointment or treatment
// step to a concrete date and time. Decisions are ephemeral: built per
// planning call, discarded after execution or rejection.
type SchedulingDecision struct {
	AppointmentID string         `json:"appointment_id,omitempty"`
	StepIndex     int            `json:"step,omitempty"`
	PatientName   string         `json:"patient_name,omitempty"`
	Treatment     string         `json:"treatment,omitempty"`
	CurrentSlot   string         `json:"current_slot,omitempty"`
	ProposedDate  string         `json:"proposed_date,omitempty"`
	ProposedTime  string         `json:"proposed_time,omitempty"`
	Confidence    float64        `json:"confidence"`
	Rationale     string         `json:"rationale,omitempty"`
	Status        DecisionStatus `json:"status"`
}

// ProposedSlot renders the target slot string, empty when unplaced.
func (d *SchedulingDecision) ProposedSlot() string {
	if d.ProposedDate == "" || d.ProposedTime == "" {
		return ""
	}
	return d.ProposedDate + " " + d.ProposedTime
}

// PlanStats aggregates per-decision outcomes; totals always equal the sum of
// successful and failed entries.
type PlanStats struct {
	Total         int      `json:"total"`
	Successful    int      `json:"successful"`
	Failed        int      `json:"failed"`
	AffectedDates []string `json:"affected_dates,omitempty"`
}

// ReschedulePlan is an approval-pending batch of decisions. It always starts
// unapproved; execution requires an explicit approval from the caller.
type ReschedulePlan struct {
	ID             string               `json:"id"`
	Decisions      []SchedulingDecision `json:"decisions"`
	Stats          PlanStats            `json:"stats"`
	Strategy       string               `json:"strategy,omitempty"`
	ExecutionReady bool                 `json:"execution_ready"`
	Approved       bool                 `json:"approved"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ExecutionOutcome is the terminal state of an executed decision.
type ExecutionOutcome string

const (
	ExecutionApplied ExecutionOutcome = "applied"
	ExecutionFailed  ExecutionOutcome = "failed"
)

// ExecutionResult records what happened to a single decision when the plan
// was applied to the store.
type ExecutionResult struct {
	AppointmentID string           `json:"appointment_id"`
	Outcome       ExecutionOutcome `json:"outcome"`
	Message       string           `json:"message"`
	OldSlot       string           `json:"old_slot,omitempty"`
	NewSlot       string           `json:"new_slot,omitempty"`
}

// ExecutionSummary aggregates the batch outcome.
type ExecutionSummary struct {
	Total   int `json:"total"`
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}
