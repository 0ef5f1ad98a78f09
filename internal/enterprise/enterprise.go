package enterprise

import (
	"context"
	"time"
)

// Enterprise is the top-level tenant of the platform. Every
// organization, voice agent, contact, call log and balance row hangs
// off exactly one enterprise, and all queries are scoped by its ID.
type Enterprise struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ContactEmail string    `json:"contact_email"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Enterprise types
const (
	TypeTrial      = "trial"
	TypeCorporate  = "corporate"
	TypeHealthcare = "healthcare"
)

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Stats aggregates resource counts for one enterprise, for the admin
// overview.
type Stats struct {
	Organizations int64 `json:"organizations"`
	Channels      int64 `json:"channels"`
	VoiceAgents   int64 `json:"voice_agents"`
	Contacts      int64 `json:"contacts"`
	CallLogs      int64 `json:"call_logs"`
	Users         int64 `json:"users"`
}

// StatsRepository counts an enterprise's resources.
type StatsRepository interface {
	Collect(ctx context.Context, enterpriseID string) (*Stats, error)
}

// IsValidType reports whether t is a recognised enterprise type.
func IsValidType(t string) bool {
	switch t {
	case TypeTrial, TypeCorporate, TypeHealthcare:
		return true
	}
	return false
}
