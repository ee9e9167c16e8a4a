package ports

import (
	"context"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// CreateItemInput carries the data needed to create an item for a user.
type CreateItemInput struct {
	OwnerID     int64
	Name        string
	Description string
}

// ItemService defines use-case operations over user-owned items.
type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	// List returns the requester's own items; elevated roles see all items.
	List(ctx context.Context, requesterID int64) ([]domain.Item, error)
	// Get returns the item when the requester owns it or holds an elevated
	// role, domain.ErrForbidden otherwise.
	Get(ctx context.Context, requesterID, itemID int64) (*domain.Item, error)
	Delete(ctx context.Context, requesterID, itemID int64) error
}
