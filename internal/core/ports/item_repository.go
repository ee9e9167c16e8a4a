package ports

import (
	"context"

	"github.com/userdeck/identity-service/internal/core/domain"
)

// ItemRepository persists user-owned items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	ListAll(ctx context.Context) ([]domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
