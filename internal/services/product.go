package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iqbalrsyd/reog-commerce/internal/cache"
	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// ProductRepository interface for product data operations
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Put(ctx context.Context, product *models.Product) error
	Patch(ctx context.Context, id string, patch map[string]any) error
	Query(ctx context.Context, q docstore.Query) ([]models.Product, error)
	Count(ctx context.Context, filters []docstore.Filter) (int, error)
	GetLike(ctx context.Context, productID, userID string) (bool, error)
	PutLike(ctx context.Context, productID, userID string) error
	DeleteLike(ctx context.Context, productID, userID string) error
}

// productBaseline is the mandatory filter applied at the store level on
// every product listing; it is cheap and universally indexed
var productBaseline = docstore.Filter{Field: "isActive", Value: true}

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo ProductRepository
	outletRepo  OutletRepository
	cache       *cache.Client
	limits      CatalogLimits
}

// NewProductService creates a new product service. cacheClient may be nil
// to disable listing-page caching.
func NewProductService(productRepo ProductRepository, outletRepo OutletRepository, cacheClient *cache.Client, limits CatalogLimits) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		outletRepo:  outletRepo,
		cache:       cacheClient,
		limits:      limits.withDefaults(),
	}
}

// ProductFilters represents the listing filters accepted by the catalog.
// Featured is only a filter when true, matching the wire contract where
// only featured=true selects.
type ProductFilters struct {
	Category string
	Featured bool
	Page     int
	Limit    int
}

// ProductListResult is one page of the product catalog
type ProductListResult struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// ListProducts returns one page of active products matching the filters.
// The query plan is chosen from the filter count; if the store rejects a
// pushed query for lack of a composite index the listing silently re-runs
// on the in-memory path.
func (s *ProductService) ListProducts(ctx context.Context, filters ProductFilters) (*ProductListResult, error) {
	page, limit := normalizePage(filters.Page, filters.Limit, s.limits.DefaultPageSize, s.limits.MaxPageSize)

	cacheKey := fmt.Sprintf("products:list:category=%s:featured=%t:page=%d:limit=%d",
		filters.Category, filters.Featured, page, limit)
	cached := &ProductListResult{}
	if s.cache.GetJSON(ctx, cacheKey, cached) {
		return cached, nil
	}

	plan := selectPlan(productExtraFilters(filters))
	fetch, inBound := s.limits.fetchWindow(page, limit)

	var result *ProductListResult
	var err error
	if plan.kind == planInMemory || !inBound {
		result, err = s.listInMemory(ctx, filters, page, limit)
	} else {
		result, err = s.listPushed(ctx, plan, page, limit, fetch)
		if err != nil && docstore.IsMissingIndex(err) {
			log.Printf("product listing missing index, falling back to in-memory filtering: %v", err)
			result, err = s.listInMemory(ctx, filters, page, limit)
		}
	}
	if err != nil {
		return nil, err
	}

	s.attachOutlets(ctx, result.Products)
	s.cache.SetJSON(ctx, cacheKey, result)
	return result, nil
}

// productExtraFilters builds the equality filters requested on top of the
// baseline. Pure function of the filter set.
func productExtraFilters(filters ProductFilters) []docstore.Filter {
	var extras []docstore.Filter
	if filters.Category != "" {
		extras = append(extras, docstore.Filter{Field: "category", Value: filters.Category})
	}
	if filters.Featured {
		extras = append(extras, docstore.Filter{Field: "featured", Value: true})
	}
	return extras
}

// listPushed executes the store-pushed plan: baseline plus at most one
// extra filter, sort and fetch bound handled by the store. The total is
// approximate, taken from a baseline-only count.
func (s *ProductService) listPushed(ctx context.Context, plan queryPlan, page, limit, fetch int) (*ProductListResult, error) {
	q := docstore.Query{
		Filters: []docstore.Filter{productBaseline},
		OrderBy: "createdAt",
		Desc:    true,
		Limit:   fetch,
	}
	if plan.kind == planPushOne {
		q.Filters = append(q.Filters, plan.pushed)
	}

	products, err := s.productRepo.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	// The store only filters on isActive; soft-deleted products are
	// dropped after the fetch.
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsDeleted {
			kept = append(kept, p)
		}
	}

	total, err := s.productRepo.Count(ctx, []docstore.Filter{productBaseline})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	start, end := pageWindow(len(kept), page, limit)
	return &ProductListResult{
		Products:   kept[start:end],
		Pagination: makePagination(page, limit, total),
	}, nil
}

// listInMemory fetches the baseline-filtered set, bounded by MaxScanSize,
// and applies every extra filter and the sort here. The total is exact.
func (s *ProductService) listInMemory(ctx context.Context, filters ProductFilters, page, limit int) (*ProductListResult, error) {
	q := docstore.Query{
		Filters: []docstore.Filter{productBaseline},
		Limit:   s.limits.MaxScanSize,
	}
	products, err := s.productRepo.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsDeleted {
			continue
		}
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Featured && !p.Featured {
			continue
		}
		filtered = append(filtered, p)
	}

	// Newest first; equal timestamps keep insertion order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start, end := pageWindow(len(filtered), page, limit)
	return &ProductListResult{
		Products:   filtered[start:end],
		Pagination: makePagination(page, limit, len(filtered)),
	}, nil
}

// GetProduct retrieves a single product by id. Soft-deleted products stay
// readable for order history. When the caller is identified the view
// counter is incremented best effort; a failed increment never fails the
// read.
func (s *ProductService) GetProduct(ctx context.Context, id, userID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Outlet = resolveOutletSummary(ctx, s.outletRepo, product.OutletID)

	if userID != "" {
		patch := map[string]any{
			"stats.views": docstore.Increment{By: 1},
			"updatedAt":   time.Now().UTC(),
		}
		if err := s.productRepo.Patch(ctx, id, patch); err != nil {
			log.Printf("failed to increment view count for product %s: %v", id, err)
		}
	}

	return product, nil
}

// ListProductsByOutlet returns the active products of one outlet, newest
// first, optionally narrowed to a category. Unpaginated; an explicit limit
// caps the result, otherwise only the scan bound applies.
func (s *ProductService) ListProductsByOutlet(ctx context.Context, outletID, category string, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = s.limits.MaxScanSize
	}

	filters := []docstore.Filter{
		{Field: "outletId", Value: outletID},
		{Field: "isActive", Value: true},
		{Field: "isDeleted", Value: false},
	}
	if category != "" {
		filters = append(filters, docstore.Filter{Field: "category", Value: category})
	}

	q := docstore.Query{Filters: filters, OrderBy: "createdAt", Desc: true, Limit: limit}
	products, err := s.productRepo.Query(ctx, q)
	if err == nil {
		s.attachOutlets(ctx, products)
		return products, nil
	}
	if !docstore.IsMissingIndex(err) {
		return nil, err
	}

	log.Printf("outlet product listing missing index, falling back to in-memory filtering: %v", err)
	broad := docstore.Query{
		Filters: []docstore.Filter{{Field: "outletId", Value: outletID}},
		Limit:   s.limits.MaxScanSize,
	}
	products, err = s.productRepo.Query(ctx, broad)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsAvailable() {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	s.attachOutlets(ctx, filtered)
	return filtered, nil
}

// CreateProduct creates a new product owned by the seller
func (s *ProductService) CreateProduct(ctx context.Context, sellerID string, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	category := req.Category
	if category == "" {
		category = "Kerajinan"
	}
	condition := req.Condition
	if condition == "" {
		condition = "Baru"
	}

	product := &models.Product{
		ID:             uuid.NewString(),
		OutletID:       req.OutletID,
		SellerID:       sellerID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		Price:          req.Price,
		Stock:          req.Stock,
		Condition:      condition,
		AdditionalInfo: req.AdditionalInfo,
		Images:         req.Images,
		Tags:           req.Tags,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Put(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.adjustOutletCounter(ctx, req.OutletID, "stats.totalProducts", 1)
	s.cache.Invalidate(ctx, "products:list:*")
	return product, nil
}

// UpdateProduct updates an existing product after an ownership check
func (s *ProductService) UpdateProduct(ctx context.Context, id, sellerID string, req *models.ProductUpdateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: not the product owner", models.ErrUnauthorized)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.Images != nil {
		product.Images = append(product.Images, req.Images...)
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Put(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(ctx, "products:list:*")
	return product, nil
}

// DeleteProduct soft-deletes a product after an ownership check. The
// document stays readable by id for order history.
func (s *ProductService) DeleteProduct(ctx context.Context, id, sellerID string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerID != sellerID {
		return fmt.Errorf("%w: not the product owner", models.ErrUnauthorized)
	}

	patch := map[string]any{
		"isDeleted": true,
		"isActive":  false,
		"updatedAt": time.Now().UTC(),
	}
	if err := s.productRepo.Patch(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.adjustOutletCounter(ctx, product.OutletID, "stats.totalProducts", -1)
	s.cache.Invalidate(ctx, "products:list:*")
	return nil
}

// ToggleLike flips the user's like on a product and adjusts the counter
// atomically at the store layer. Returns the resulting liked state.
func (s *ProductService) ToggleLike(ctx context.Context, productID, userID string) (bool, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return false, err
	}

	liked, err := s.productRepo.GetLike(ctx, productID, userID)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if liked {
		if err := s.productRepo.DeleteLike(ctx, productID, userID); err != nil {
			return false, err
		}
		patch := map[string]any{"stats.likes": docstore.Increment{By: -1}, "updatedAt": now}
		if err := s.productRepo.Patch(ctx, productID, patch); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.productRepo.PutLike(ctx, productID, userID); err != nil {
		return false, err
	}
	patch := map[string]any{"stats.likes": docstore.Increment{By: 1}, "updatedAt": now}
	if err := s.productRepo.Patch(ctx, productID, patch); err != nil {
		return false, err
	}
	return true, nil
}

// attachOutlets resolves the outlet summary for each product, best effort
func (s *ProductService) attachOutlets(ctx context.Context, products []models.Product) {
	for i := range products {
		products[i].Outlet = resolveOutletSummary(ctx, s.outletRepo, products[i].OutletID)
	}
}

// adjustOutletCounter bumps an aggregate counter on the owning outlet.
// Failures are logged, never surfaced; outlet stats are advisory.
func (s *ProductService) adjustOutletCounter(ctx context.Context, outletID, field string, delta int) {
	if outletID == "" {
		return
	}
	patch := map[string]any{
		field:       docstore.Increment{By: delta},
		"updatedAt": time.Now().UTC(),
	}
	if err := s.outletRepo.Patch(ctx, outletID, patch); err != nil {
		log.Printf("failed to adjust %s on outlet %s: %v", field, outletID, err)
	}
}
