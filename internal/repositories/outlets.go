package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// OutletRepository handles outlet document operations
type OutletRepository struct {
	store docstore.Store
}

// NewOutletRepository creates a new outlet repository
func NewOutletRepository(store docstore.Store) *OutletRepository {
	return &OutletRepository{store: store}
}

// GetByID retrieves an outlet by id
func (r *OutletRepository) GetByID(ctx context.Context, id string) (*models.Outlet, error) {
	outlet := &models.Outlet{}
	err := r.store.Get(ctx, CollectionOutlets, id, outlet)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, models.ErrOutletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}
	return outlet, nil
}

// Put creates or replaces an outlet document
func (r *OutletRepository) Put(ctx context.Context, outlet *models.Outlet) error {
	if err := r.store.Put(ctx, CollectionOutlets, outlet.ID, outlet); err != nil {
		return fmt.Errorf("failed to save outlet: %w", err)
	}
	return nil
}

// Patch applies a partial update to an outlet document
func (r *OutletRepository) Patch(ctx context.Context, id string, patch map[string]any) error {
	err := r.store.Update(ctx, CollectionOutlets, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.ErrOutletNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to patch outlet: %w", err)
	}
	return nil
}

// GetByOwner retrieves all outlets owned by a user
func (r *OutletRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Outlet, error) {
	var outlets []models.Outlet
	q := docstore.Query{Filters: []docstore.Filter{{Field: "ownerId", Value: ownerID}}}
	if err := r.store.Query(ctx, CollectionOutlets, q, &outlets); err != nil {
		return nil, fmt.Errorf("failed to query outlets: %w", err)
	}
	return outlets, nil
}
