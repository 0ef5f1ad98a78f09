package enterprise

import (
	"context"
	"errors"
)

var (
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	ErrNameTaken          = errors.New("enterprise name already in use")
)

// Repository defines the interface for enterprise storage
type Repository interface {
	Create(ctx context.Context, e *Enterprise) error
	GetByID(ctx context.Context, id string) (*Enterprise, error)
	GetByName(ctx context.Context, name string) (*Enterprise, error)
	Update(ctx context.Context, e *Enterprise) error
	List(ctx context.Context, limit, offset int) ([]*Enterprise, error)
}
