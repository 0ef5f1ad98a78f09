package orgs

import (
	"time"
)

// Organization is a workspace inside an enterprise. Channels and voice
// agents are grouped under organizations.
type Organization struct {
	ID           string    `json:"id"`
	EnterpriseID string    `json:"enterprise_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Channel is a communication surface of an organization. Voice agents
// attach to a channel, and the channel category decides which kind of
// traffic they handle.
type Channel struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	EnterpriseID   string    `json:"enterprise_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Channel categories. The set is closed: creating a channel with any
// other category is rejected.
const (
	CategoryInboundCalls     = "Inbound Calls"
	CategoryOutboundCalls    = "Outbound Calls"
	CategoryWhatsAppMessages = "WhatsApp Messages"
)

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// IsValidCategory reports whether c is a recognised channel category.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryInboundCalls, CategoryOutboundCalls, CategoryWhatsAppMessages:
		return true
	}
	return false
}
