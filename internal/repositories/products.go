package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// ProductRepository handles product document operations
type ProductRepository struct {
	store docstore.Store
}

// NewProductRepository creates a new product repository
func NewProductRepository(store docstore.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product := &models.Product{}
	err := r.store.Get(ctx, CollectionProducts, id, product)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Put creates or replaces a product document
func (r *ProductRepository) Put(ctx context.Context, product *models.Product) error {
	if err := r.store.Put(ctx, CollectionProducts, product.ID, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// Patch applies a partial update to a product document
func (r *ProductRepository) Patch(ctx context.Context, id string, patch map[string]any) error {
	err := r.store.Update(ctx, CollectionProducts, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to patch product: %w", err)
	}
	return nil
}

// Query runs an equality-filtered read against the products collection.
// Missing-index rejections pass through so the caller can re-plan.
func (r *ProductRepository) Query(ctx context.Context, q docstore.Query) ([]models.Product, error) {
	var products []models.Product
	if err := r.store.Query(ctx, CollectionProducts, q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of products matching the filters
func (r *ProductRepository) Count(ctx context.Context, filters []docstore.Filter) (int, error) {
	return r.store.Count(ctx, CollectionProducts, filters)
}

// ProductLike marks that a user has liked a product, keyed productId_userId
type ProductLike struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"productId" bson:"productId"`
	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// GetLike reports whether the user has already liked the product
func (r *ProductRepository) GetLike(ctx context.Context, productID, userID string) (bool, error) {
	like := &ProductLike{}
	err := r.store.Get(ctx, CollectionProductLikes, productID+"_"+userID, like)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get like: %w", err)
	}
	return true, nil
}

// PutLike records a like for the product
func (r *ProductRepository) PutLike(ctx context.Context, productID, userID string) error {
	like := &ProductLike{
		ID:        productID + "_" + userID,
		ProductID: productID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.Put(ctx, CollectionProductLikes, like.ID, like); err != nil {
		return fmt.Errorf("failed to save like: %w", err)
	}
	return nil
}

// DeleteLike removes the user's like for the product
func (r *ProductRepository) DeleteLike(ctx context.Context, productID, userID string) error {
	if err := r.store.Delete(ctx, CollectionProductLikes, productID+"_"+userID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}
