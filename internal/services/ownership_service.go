package services

import (
	"context"
	"errors"

	"storeadmin/internal/models"
	"storeadmin/internal/repositories"

	"github.com/google/uuid"
)

// ErrStoreNotOwned covers both "store does not exist" and "store belongs to
// someone else". Handlers map it to 404 so callers cannot tell the two
// apart.
var ErrStoreNotOwned = errors.New("store not found, unauthorized")

// OwnershipService is the gate every mutating child-entity operation passes
// through before touching the database.
type OwnershipService interface {
	RequireStoreOwner(ctx context.Context, userID string, storeID uuid.UUID) (*models.Store, error)
}

type ownershipService struct {
	storeRepo repositories.StoreRepository
}

func NewOwnershipService(storeRepo repositories.StoreRepository) OwnershipService {
	return &ownershipService{storeRepo: storeRepo}
}

// RequireStoreOwner confirms a store row matches both the id and the
// caller's identity. Decisions are never cached; every request re-checks.
func (s *ownershipService) RequireStoreOwner(ctx context.Context, userID string, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.storeRepo.GetByIDAndUser(ctx, storeID, userID)
	if err != nil {
		return nil, ErrStoreNotOwned
	}
	return store, nil
}
