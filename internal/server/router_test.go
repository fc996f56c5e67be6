package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/handlers"
	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/repositories"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

const testSecret = "router-test-secret"

type apiFixture struct {
	store  *docstore.MemoryStore
	router http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := docstore.NewMemoryStore()

	productRepo := repositories.NewProductRepository(store)
	eventRepo := repositories.NewEventRepository(store)
	outletRepo := repositories.NewOutletRepository(store)
	cartRepo := repositories.NewCartRepository(store)

	limits := services.CatalogLimits{DefaultPageSize: 10, MaxPageSize: 100, MaxScanSize: 1000}
	router := NewRouter(Handlers{
		Products: handlers.NewProductHandler(services.NewProductService(productRepo, outletRepo, nil, limits)),
		Events:   handlers.NewEventHandler(services.NewEventService(eventRepo, outletRepo, nil, limits)),
		Outlets:  handlers.NewOutletHandler(services.NewOutletService(outletRepo)),
		Cart:     handlers.NewCartHandler(services.NewCartService(cartRepo, productRepo, eventRepo)),
	}, middleware.NewAuth(testSecret))

	return &apiFixture{store: store, router: router}
}

func (f *apiFixture) seedProduct(t *testing.T, p models.Product) {
	t.Helper()
	require.NoError(t, repositories.NewProductRepository(f.store).Put(context.Background(), &p))
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
	Pagination *services.Pagination `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	env := envelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func token(t *testing.T, userID string) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProductsEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	f.seedProduct(t, models.Product{ID: "p1", Name: "Topeng", IsActive: true, Price: models.PriceRange{Min: 1000}, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	f.seedProduct(t, models.Product{ID: "p2", Name: "Kaos", IsActive: false, Price: models.PriceRange{Min: 500}, CreatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)})

	rec := f.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Total)

	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestProductMalformedFiltersIgnored(t *testing.T) {
	f := newAPIFixture(t)

	f.seedProduct(t, models.Product{ID: "p1", IsActive: true, Price: models.PriceRange{Min: 1000}})

	rec := f.do(t, http.MethodGet, "/api/products?page=abc&limit=-3&featured=banana", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 1)
}

func TestGetProductNotFoundEnvelope(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/products/missing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCartRequiresAuth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartFlow(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "u1")

	f.seedProduct(t, models.Product{ID: "p1", IsActive: true, Stock: 10, Price: models.PriceRange{Min: 1000}})

	rec := f.do(t, http.MethodPost, "/api/cart/add", user, map[string]any{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var cart models.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 2000, cart.TotalAmount)

	// Omitted quantity defaults to one unit.
	rec = f.do(t, http.MethodPost, "/api/cart/add", user, map[string]any{"productId": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 3, cart.TotalItems)

	rec = f.do(t, http.MethodDelete, "/api/cart/remove", user, map[string]any{"productId": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 0, cart.TotalItems)
}

func TestCartInsufficientStockEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "u1")

	f.seedProduct(t, models.Product{ID: "p1", IsActive: true, Stock: 3, Price: models.PriceRange{Min: 1000}})

	rec := f.do(t, http.MethodPost, "/api/cart/add", user, map[string]any{"productId": "p1", "quantity": 5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)
}

func TestCartNegativeQuantityRejected(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "u1")

	f.seedProduct(t, models.Product{ID: "p1", IsActive: true, Stock: 10, Price: models.PriceRange{Min: 1000}})

	rec := f.do(t, http.MethodPost, "/api/cart/add", user, map[string]any{"productId": "p1", "quantity": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_QUANTITY", env.Error.Code)
}

func TestCreateProductEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "seller")

	body := map[string]any{
		"outletId":       "o1",
		"name":           "Topeng",
		"price":          map[string]int{"min": 100000},
		"stock":          5,
		"additionalInfo": []map[string]string{{"label": "Material", "value": "Wood"}},
		"images":         []string{"img.jpg"},
	}

	rec := f.do(t, http.MethodPost, "/api/products", user, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "seller", product.SellerID)
	assert.Equal(t, "Kerajinan", product.Category)

	// Writes require authentication.
	rec = f.do(t, http.MethodPost, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOutletRoutes(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "owner")

	rec := f.do(t, http.MethodPost, "/api/outlets", user, map[string]any{"name": "Sanggar", "type": "sanggar"})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var outlet models.Outlet
	require.NoError(t, json.Unmarshal(env.Data, &outlet))

	rec = f.do(t, http.MethodGet, "/api/outlets/"+outlet.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/outlets/mine", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	var outlets []models.Outlet
	require.NoError(t, json.Unmarshal(env.Data, &outlets))
	assert.Len(t, outlets, 1)

	rec = f.do(t, http.MethodDelete, "/api/outlets/"+outlet.ID, token(t, "intruder"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/outlets/"+outlet.ID, user, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductsByOutletRoute(t *testing.T) {
	f := newAPIFixture(t)

	f.seedProduct(t, models.Product{ID: "p1", OutletID: "o1", IsActive: true, Price: models.PriceRange{Min: 1000}})
	f.seedProduct(t, models.Product{ID: "p2", OutletID: "o2", IsActive: true, Price: models.PriceRange{Min: 1000}})

	rec := f.do(t, http.MethodGet, "/api/products/outlet/o1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCartTicketRoutes(t *testing.T) {
	f := newAPIFixture(t)
	user := token(t, "u1")

	event := models.Event{
		ID:       "e1",
		IsActive: true,
		TicketCategories: []models.TicketCategory{
			{Category: "VIP", Price: 150000, Quota: 10},
		},
	}
	require.NoError(t, repositories.NewEventRepository(f.store).Put(context.Background(), &event))

	rec := f.do(t, http.MethodPost, "/api/cart/tickets/add", user, map[string]any{"eventId": "e1", "category": "VIP", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var cart models.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 300000, cart.TotalAmount)

	rec = f.do(t, http.MethodDelete, "/api/cart/tickets/remove", user, map[string]any{"eventId": "e1", "category": "VIP"})
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 0, cart.TotalItems)
}
