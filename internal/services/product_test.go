package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/repositories"
)

type catalogFixture struct {
	store    *docstore.MemoryStore
	products *ProductService
	events   *EventService
	outlets  *repositories.OutletRepository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	productRepo := repositories.NewProductRepository(store)
	eventRepo := repositories.NewEventRepository(store)
	outletRepo := repositories.NewOutletRepository(store)
	limits := CatalogLimits{DefaultPageSize: 10, MaxPageSize: 100, MaxScanSize: 1000}
	return &catalogFixture{
		store:    store,
		products: NewProductService(productRepo, outletRepo, nil, limits),
		events:   NewEventService(eventRepo, outletRepo, nil, limits),
		outlets:  outletRepo,
	}
}

func seedProduct(t *testing.T, f *catalogFixture, p models.Product) models.Product {
	t.Helper()
	if p.Price.Min == 0 {
		p.Price = models.PriceRange{Min: 1000}
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	repo := repositories.NewProductRepository(f.store)
	require.NoError(t, repo.Put(context.Background(), &p))
	return p
}

func catalogTime(sec int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, sec, 0, time.UTC)
}

func TestListProductsBaselinePush(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", Name: "old", IsActive: true, CreatedAt: catalogTime(1)})
	seedProduct(t, f, models.Product{ID: "p2", Name: "new", IsActive: true, CreatedAt: catalogTime(3)})
	seedProduct(t, f, models.Product{ID: "p3", Name: "mid", IsActive: true, CreatedAt: catalogTime(2)})
	seedProduct(t, f, models.Product{ID: "p4", Name: "inactive", IsActive: false, CreatedAt: catalogTime(4)})
	seedProduct(t, f, models.Product{ID: "p5", Name: "deleted", IsActive: true, IsDeleted: true, CreatedAt: catalogTime(5)})

	result, err := f.products.ListProducts(ctx, ProductFilters{})
	require.NoError(t, err)

	require.Len(t, result.Products, 3)
	assert.Equal(t, "p2", result.Products[0].ID)
	assert.Equal(t, "p3", result.Products[1].ID)
	assert.Equal(t, "p1", result.Products[2].ID)
	assert.Equal(t, 1, result.Pagination.Page)
}

func TestListProductsOneFilterPushedWithIndex(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.store.RegisterIndex(repositories.CollectionProducts, "createdAt", "isActive", "category")

	seedProduct(t, f, models.Product{ID: "p1", Category: "Kerajinan", IsActive: true, CreatedAt: catalogTime(1)})
	seedProduct(t, f, models.Product{ID: "p2", Category: "Pakaian", IsActive: true, CreatedAt: catalogTime(2)})
	seedProduct(t, f, models.Product{ID: "p3", Category: "Kerajinan", IsActive: true, CreatedAt: catalogTime(3)})

	result, err := f.products.ListProducts(ctx, ProductFilters{Category: "Kerajinan"})
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "p3", result.Products[0].ID)
	assert.Equal(t, "p1", result.Products[1].ID)
}

func TestListProductsFallsBackWithoutIndex(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	// No composite index registered, so the pushed category query is
	// rejected and the listing re-runs in memory.

	seedProduct(t, f, models.Product{ID: "p1", Category: "Kerajinan", IsActive: true, CreatedAt: catalogTime(1)})
	seedProduct(t, f, models.Product{ID: "p2", Category: "Pakaian", IsActive: true, CreatedAt: catalogTime(2)})
	seedProduct(t, f, models.Product{ID: "p3", Category: "Kerajinan", IsActive: true, CreatedAt: catalogTime(3)})

	result, err := f.products.ListProducts(ctx, ProductFilters{Category: "Kerajinan"})
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "p3", result.Products[0].ID)
	assert.Equal(t, "p1", result.Products[1].ID)
	// The in-memory path counts only matching documents.
	assert.Equal(t, 2, result.Pagination.Total)
}

func TestListProductsBothPathsAgree(t *testing.T) {
	seed := func(f *catalogFixture) {
		seedProduct(t, f, models.Product{ID: "p1", Category: "A", Featured: true, IsActive: true, CreatedAt: catalogTime(1)})
		seedProduct(t, f, models.Product{ID: "p2", Category: "A", IsActive: true, CreatedAt: catalogTime(2)})
		seedProduct(t, f, models.Product{ID: "p3", Category: "B", Featured: true, IsActive: true, CreatedAt: catalogTime(3)})
	}

	indexed := newCatalogFixture(t)
	indexed.store.RegisterIndex(repositories.CollectionProducts, "createdAt", "isActive", "category")
	seed(indexed)

	plain := newCatalogFixture(t)
	seed(plain)

	ctx := context.Background()
	filters := ProductFilters{Category: "A"}

	pushed, err := indexed.products.ListProducts(ctx, filters)
	require.NoError(t, err)
	fallback, err := plain.products.ListProducts(ctx, filters)
	require.NoError(t, err)

	require.Len(t, pushed.Products, len(fallback.Products))
	for i := range pushed.Products {
		assert.Equal(t, fallback.Products[i].ID, pushed.Products[i].ID)
	}
}

func TestListProductsTwoFiltersRunInMemory(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", Category: "A", Featured: true, IsActive: true, CreatedAt: catalogTime(1)})
	seedProduct(t, f, models.Product{ID: "p2", Category: "A", IsActive: true, CreatedAt: catalogTime(2)})
	seedProduct(t, f, models.Product{ID: "p3", Category: "B", Featured: true, IsActive: true, CreatedAt: catalogTime(3)})

	result, err := f.products.ListProducts(ctx, ProductFilters{Category: "A", Featured: true})
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "p1", result.Products[0].ID)
	assert.Equal(t, 1, result.Pagination.Total)
}

func TestListProductsPaging(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedProduct(t, f, models.Product{
			ID:        string(rune('a' + i)),
			IsActive:  true,
			CreatedAt: catalogTime(i),
		})
	}

	result, err := f.products.ListProducts(ctx, ProductFilters{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "c", result.Products[0].ID)
	assert.Equal(t, "b", result.Products[1].ID)
	assert.Equal(t, 5, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}

func TestGetProductAttachesOutletAndCountsView(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	outlet := &models.Outlet{ID: "o1", OwnerID: "seller", Name: "Sanggar", Type: "sanggar", IsActive: true}
	require.NoError(t, f.outlets.Put(ctx, outlet))
	seedProduct(t, f, models.Product{ID: "p1", OutletID: "o1", IsActive: true, CreatedAt: catalogTime(1)})

	// Anonymous read leaves the view counter alone.
	product, err := f.products.GetProduct(ctx, "p1", "")
	require.NoError(t, err)
	require.NotNil(t, product.Outlet)
	assert.Equal(t, "Sanggar", product.Outlet.Name)
	assert.Equal(t, 0, product.Stats.Views)

	// Identified reads move it.
	_, err = f.products.GetProduct(ctx, "p1", "u1")
	require.NoError(t, err)
	product, err = f.products.GetProduct(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stats.Views)
}

func TestGetProductNotFound(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.products.GetProduct(context.Background(), "missing", "")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestCreateProductDefaults(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	req := &models.ProductCreateRequest{
		OutletID:       "o1",
		Name:           "Topeng",
		Price:          models.PriceRange{Min: 100000},
		Stock:          5,
		AdditionalInfo: []models.AdditionalInfo{{Label: "Material", Value: "Wood"}},
		Images:         []string{"img.jpg"},
	}

	product, err := f.products.CreateProduct(ctx, "seller", req)
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Kerajinan", product.Category)
	assert.Equal(t, "Baru", product.Condition)
	assert.Equal(t, "seller", product.SellerID)
	assert.True(t, product.IsActive)
}

func TestCreateProductRejectsInvalid(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.products.CreateProduct(context.Background(), "seller", &models.ProductCreateRequest{Name: ""})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateProductOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", SellerID: "owner", IsActive: true, CreatedAt: catalogTime(1)})

	name := "renamed"
	_, err := f.products.UpdateProduct(ctx, "p1", "intruder", &models.ProductUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	updated, err := f.products.UpdateProduct(ctx, "p1", "owner", &models.ProductUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestDeleteProductIsSoft(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", SellerID: "owner", IsActive: true, CreatedAt: catalogTime(1)})
	require.NoError(t, f.products.DeleteProduct(ctx, "p1", "owner"))

	// Gone from listings but still readable by id.
	result, err := f.products.ListProducts(ctx, ProductFilters{})
	require.NoError(t, err)
	assert.Empty(t, result.Products)

	product, err := f.products.GetProduct(ctx, "p1", "")
	require.NoError(t, err)
	assert.True(t, product.IsDeleted)
	assert.False(t, product.IsActive)
}

func TestToggleLike(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", IsActive: true, CreatedAt: catalogTime(1)})

	liked, err := f.products.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)

	product, err := f.products.GetProduct(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stats.Likes)

	liked, err = f.products.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)

	product, err = f.products.GetProduct(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stats.Likes)
}

func TestListProductsByOutlet(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", OutletID: "o1", IsActive: true, CreatedAt: catalogTime(1)})
	seedProduct(t, f, models.Product{ID: "p2", OutletID: "o2", IsActive: true, CreatedAt: catalogTime(2)})
	seedProduct(t, f, models.Product{ID: "p3", OutletID: "o1", IsActive: true, CreatedAt: catalogTime(3)})
	seedProduct(t, f, models.Product{ID: "p4", OutletID: "o1", IsActive: false, CreatedAt: catalogTime(4)})

	// No composite index exists for this query shape, so the in-memory
	// fallback serves it.
	products, err := f.products.ListProductsByOutlet(ctx, "o1", "", 10)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p1", products[1].ID)
}

// recordingProductRepo forwards to the real repository and records the
// fetch limit of every query it passes to the store.
type recordingProductRepo struct {
	ProductRepository
	fetches []int
}

func (r *recordingProductRepo) Query(ctx context.Context, q docstore.Query) ([]models.Product, error) {
	r.fetches = append(r.fetches, q.Limit)
	return r.ProductRepository.Query(ctx, q)
}

func TestListProductsDeepPageBoundsStoreFetch(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	seedProduct(t, f, models.Product{ID: "p1", IsActive: true, CreatedAt: catalogTime(1)})

	repo := &recordingProductRepo{ProductRepository: repositories.NewProductRepository(f.store)}
	limits := CatalogLimits{DefaultPageSize: 10, MaxPageSize: 100, MaxScanSize: 1000}
	svc := NewProductService(repo, f.outlets, nil, limits)

	// A deep page and a page large enough to wrap page*limit; both must be
	// served from the bounded in-memory path rather than asking the store
	// for a fetch window of page*limit documents.
	for _, page := range []int{1_000_000, 1 << 60} {
		result, err := svc.ListProducts(ctx, ProductFilters{Page: page, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Equal(t, 1, result.Pagination.Total)
	}

	require.NotEmpty(t, repo.fetches)
	for _, fetch := range repo.fetches {
		assert.LessOrEqual(t, fetch, limits.MaxScanSize)
		assert.GreaterOrEqual(t, fetch, 0)
	}
}

func TestFetchWindowBounds(t *testing.T) {
	limits := CatalogLimits{MaxScanSize: 1000}.withDefaults()

	fetch, ok := limits.fetchWindow(3, 10)
	assert.True(t, ok)
	assert.Equal(t, 30, fetch)

	_, ok = limits.fetchWindow(11, 100)
	assert.False(t, ok)

	_, ok = limits.fetchWindow(1<<60, 100)
	assert.False(t, ok)
}
