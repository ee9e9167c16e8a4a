package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
)

// ItemService implements use-case operations over user-owned items.
type ItemService struct {
	repo  ports.ItemRepository
	authz *AuthorizationService
	log   zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, authz *AuthorizationService, log zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, authz: authz, log: log}
}

func (s *ItemService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.Item, error) {
	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", created.ID).Int64("owner_id", created.OwnerID).Msg("item created")
	return created, nil
}

// List returns the requester's own items; elevated roles see all items.
func (s *ItemService) List(ctx context.Context, requesterID int64) ([]domain.Item, error) {
	role, err := s.authz.RoleOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if role.Elevated() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByOwner(ctx, requesterID)
}

func (s *ItemService) Get(ctx context.Context, requesterID, itemID int64) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	role, err := s.authz.RoleOf(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanAccessResource(requesterID, item.OwnerID, role) {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, requesterID, itemID int64) error {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	role, err := s.authz.RoleOf(ctx, requesterID)
	if err != nil {
		return err
	}
	if !s.authz.CanAccessResource(requesterID, item.OwnerID, role) {
		return domain.ErrForbidden
	}

	return s.repo.Delete(ctx, item.ID)
}
