package orgs

import (
	"context"
	"errors"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrInvalidCategory      = errors.New("invalid channel category")
)

// Repository defines the interface for organization storage
type Repository interface {
	Create(ctx context.Context, o *Organization) error
	GetByID(ctx context.Context, enterpriseID, id string) (*Organization, error)
	Update(ctx context.Context, o *Organization) error
	Delete(ctx context.Context, enterpriseID, id string) error
	ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*Organization, error)
}

// ChannelRepository defines the interface for channel storage
type ChannelRepository interface {
	Create(ctx context.Context, c *Channel) error
	GetByID(ctx context.Context, enterpriseID, id string) (*Channel, error)
	Update(ctx context.Context, c *Channel) error
	Delete(ctx context.Context, enterpriseID, id string) error
	ListByOrganization(ctx context.Context, enterpriseID, organizationID string) ([]*Channel, error)
}
