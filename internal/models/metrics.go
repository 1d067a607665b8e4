package models

import "time"

// SystemMetrics is the aggregated snapshot served by the status endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	SequencesScheduled       uint64    `json:"sequences_scheduled"`
	PlansBuilt               uint64    `json:"plans_built"`
	DecisionsApplied         uint64    `json:"decisions_applied"`
	DecisionsFailed          uint64    `json:"decisions_failed"`
	OracleCalls              uint64    `json:"oracle_calls"`
	OracleFallbacks          uint64    `json:"oracle_fallbacks"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
