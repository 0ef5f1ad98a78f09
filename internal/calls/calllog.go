package calls

import (
	"time"
)

// CallLog is an append-only record of one outbound call attempt.
type CallLog struct {
	ID              string    `json:"id"`
	EnterpriseID    string    `json:"enterprise_id"`
	VoiceAgentID    string    `json:"voice_agent_id"`
	ContactID       string    `json:"contact_id"`
	ContactName     string    `json:"contact_name"`
	Phone           string    `json:"phone"`
	Campaign        string    `json:"campaign,omitempty"`
	BolnaCallID     string    `json:"bolna_call_id,omitempty"`
	Status          string    `json:"status"`
	FailureReason   string    `json:"failure_reason,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Transcript      string    `json:"transcript,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Call statuses. Initiated and failed are written by the dispatcher;
// the rest arrive later from vendor status polling.
const (
	StatusInitiated  = "initiated"
	StatusFailed     = "failed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusBusy       = "busy"
	StatusNoAnswer   = "no_answer"
)
