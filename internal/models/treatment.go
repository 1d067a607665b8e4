package models

// TreatmentCategory buckets treatments by their scheduling behaviour.
type TreatmentCategory string

const (
	CategorySurgical   TreatmentCategory = "surgical"
	CategoryEndodontic TreatmentCategory = "endodontic"
	CategoryProsthetic TreatmentCategory = "prosthetic"
	CategoryRoutine    TreatmentCategory = "routine"
	CategoryEmergency  TreatmentCategory = "emergency"
)

// TimePreference is the preferred part of day for a category.
type TimePreference string

const (
	PreferMorning   TimePreference = "morning"
	PreferAfternoon TimePreference = "afternoon"
	PreferAny       TimePreference = "any"
)

// TreatmentClassification is the derived scheduling profile for a treatment
// label: timing preference, duration padding and inter-visit spacing bounds.
type TreatmentClassification struct {
	Category       TreatmentCategory `json:"category"`
	PreferredTime  TimePreference    `json:"preferred_time"`
	BufferMinutes  int               `json:"buffer_minutes"`
	MinSpacingDays int               `json:"min_spacing_days"`
	MaxSpacingDays int               `json:"max_spacing_days"`
	AvoidFriday    bool              `json:"avoid_friday"`
}
