package agents

import (
	"context"
	"errors"
)

var (
	ErrAgentNotFound      = errors.New("voice agent not found")
	ErrContactNotFound    = errors.New("contact not found")
	ErrDuplicateContact   = errors.New("contact with this phone already exists for the agent")
	ErrAgentNotConfigured = errors.New("voice agent has no vendor agent configured")
)

// Repository defines the interface for voice agent storage
type Repository interface {
	Create(ctx context.Context, a *VoiceAgent) error
	GetByID(ctx context.Context, enterpriseID, id string) (*VoiceAgent, error)
	Update(ctx context.Context, a *VoiceAgent) error
	Delete(ctx context.Context, enterpriseID, id string) error
	ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*VoiceAgent, error)
	ListByChannel(ctx context.Context, enterpriseID, channelID string) ([]*VoiceAgent, error)
}

// ContactRepository defines the interface for contact storage
type ContactRepository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, enterpriseID, id string) (*Contact, error)
	GetByIDs(ctx context.Context, enterpriseID string, ids []string) ([]*Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, enterpriseID, id string) error
	ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*Contact, error)
}
