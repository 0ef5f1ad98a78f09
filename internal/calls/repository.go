package calls

import (
	"context"
	"errors"
)

var (
	ErrCallLogNotFound = errors.New("call log not found")
	ErrNoContacts      = errors.New("contact list is empty")
	ErrForeignContact  = errors.New("contact does not belong to the voice agent")
	ErrInactiveContact = errors.New("contact is not active")
)

// Repository defines the interface for call log storage
type Repository interface {
	Create(ctx context.Context, cl *CallLog) error
	GetByID(ctx context.Context, enterpriseID, id string) (*CallLog, error)
	Update(ctx context.Context, cl *CallLog) error
	ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*CallLog, error)
	ListByStatus(ctx context.Context, enterpriseID, status string, limit, offset int) ([]*CallLog, error)
	ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*CallLog, error)
}
