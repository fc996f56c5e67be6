package handlers

import (
	"net/http"

	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

// CartHandler handles cart HTTP endpoints. All routes require an
// authenticated user; line identity travels in the request body, matching
// the original wire contract.
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartProductRequest struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedPrice int    `json:"selectedPrice"`
}

type cartTicketRequest struct {
	EventID  string `json:"eventId"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart retrieved", cart)
}

// AddProduct handles POST /api/cart/add. An omitted quantity defaults to
// 1; negative quantities are rejected downstream.
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	req := &cartProductRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.ProductID == "" {
		respondBadRequest(w, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.AddProduct(r.Context(), userID, req.ProductID, req.Quantity, req.SelectedPrice)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product added to cart", cart)
}

// UpdateProduct handles PUT /api/cart/update
func (h *CartHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	req := &cartProductRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.ProductID == "" {
		respondBadRequest(w, "productId is required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.UpdateProductQuantity(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart updated", cart)
}

// RemoveProduct handles DELETE /api/cart/remove
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	req := &cartProductRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.ProductID == "" {
		respondBadRequest(w, "productId is required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.RemoveProduct(r.Context(), userID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "product removed from cart", cart)
}

// AddTickets handles POST /api/cart/tickets/add
func (h *CartHandler) AddTickets(w http.ResponseWriter, r *http.Request) {
	req := &cartTicketRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.EventID == "" || req.Category == "" {
		respondBadRequest(w, "eventId and category are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.AddTickets(r.Context(), userID, req.EventID, req.Category, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "tickets added to cart", cart)
}

// UpdateTickets handles PUT /api/cart/tickets/update
func (h *CartHandler) UpdateTickets(w http.ResponseWriter, r *http.Request) {
	req := &cartTicketRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.EventID == "" || req.Category == "" {
		respondBadRequest(w, "eventId and category are required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.UpdateTicketQuantity(r.Context(), userID, req.EventID, req.Category, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart updated", cart)
}

// RemoveTickets handles DELETE /api/cart/tickets/remove
func (h *CartHandler) RemoveTickets(w http.ResponseWriter, r *http.Request) {
	req := &cartTicketRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if req.EventID == "" || req.Category == "" {
		respondBadRequest(w, "eventId and category are required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cart, err := h.carts.RemoveTickets(r.Context(), userID, req.EventID, req.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "tickets removed from cart", cart)
}

// Clear handles DELETE /api/cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	cart, err := h.carts.ClearCart(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "cart cleared", cart)
}
