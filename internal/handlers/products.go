package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

// ProductHandler handles product catalog HTTP endpoints
type ProductHandler struct {
	products *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products. Malformed filter values are ignored
// rather than rejected.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := services.ProductFilters{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
		Page:     intQuery(q.Get("page")),
		Limit:    intQuery(q.Get("limit")),
	}

	result, err := h.products.ListProducts(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, "products retrieved", result.Products, result.Pagination)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFromContext(r.Context())

	product, err := h.products.GetProduct(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product retrieved", product)
}

// ByOutlet handles GET /api/products/outlet/{outletId}
func (h *ProductHandler) ByOutlet(w http.ResponseWriter, r *http.Request) {
	outletID := chi.URLParam(r, "outletId")
	q := r.URL.Query()

	products, err := h.products.ListProductsByOutlet(r.Context(), outletID, q.Get("category"), intQuery(q.Get("limit")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "products retrieved", products)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := &models.ProductCreateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	sellerID := middleware.UserIDFromContext(r.Context())
	product, err := h.products.CreateProduct(r.Context(), sellerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "product created", product)
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := &models.ProductUpdateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	id := chi.URLParam(r, "id")
	sellerID := middleware.UserIDFromContext(r.Context())
	product, err := h.products.UpdateProduct(r.Context(), id, sellerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product updated", product)
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sellerID := middleware.UserIDFromContext(r.Context())

	if err := h.products.DeleteProduct(r.Context(), id, sellerID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product deleted", nil)
}

// ToggleLike handles POST /api/products/{id}/like
func (h *ProductHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFromContext(r.Context())

	liked, err := h.products.ToggleLike(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "like updated", map[string]bool{"liked": liked})
}

// intQuery parses a positive integer query parameter, returning 0 for
// absent or malformed values
func intQuery(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
