package repositories

import (
	"context"
	"fmt"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// CartRepository handles cart document operations. Carts are keyed by user
// id, one document per user.
type CartRepository struct {
	store docstore.Store
}

// NewCartRepository creates a new cart repository
func NewCartRepository(store docstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Get retrieves a user's cart. Returns docstore.ErrNotFound when the user
// has no cart document yet.
func (r *CartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart := &models.Cart{}
	if err := r.store.Get(ctx, CollectionCarts, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Save wholesale-replaces a user's cart document
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if err := r.store.Put(ctx, CollectionCarts, cart.UserID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
