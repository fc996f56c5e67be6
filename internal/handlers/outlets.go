package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

// OutletHandler handles outlet HTTP endpoints
type OutletHandler struct {
	outlets *services.OutletService
}

// NewOutletHandler creates a new outlet handler
func NewOutletHandler(outlets *services.OutletService) *OutletHandler {
	return &OutletHandler{outlets: outlets}
}

// Get handles GET /api/outlets/{id}
func (h *OutletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outlet, err := h.outlets.GetOutlet(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "outlet retrieved", outlet)
}

// Mine handles GET /api/outlets/mine
func (h *OutletHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserIDFromContext(r.Context())

	outlets, err := h.outlets.ListOutletsByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "outlets retrieved", outlets)
}

// Create handles POST /api/outlets
func (h *OutletHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := &models.OutletCreateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	ownerID := middleware.UserIDFromContext(r.Context())
	outlet, err := h.outlets.CreateOutlet(r.Context(), ownerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "outlet created", outlet)
}

// Update handles PUT /api/outlets/{id}
func (h *OutletHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := &models.OutletUpdateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	id := chi.URLParam(r, "id")
	ownerID := middleware.UserIDFromContext(r.Context())
	outlet, err := h.outlets.UpdateOutlet(r.Context(), id, ownerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "outlet updated", outlet)
}

// Delete handles DELETE /api/outlets/{id}
func (h *OutletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ownerID := middleware.UserIDFromContext(r.Context())

	if err := h.outlets.DeleteOutlet(r.Context(), id, ownerID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "outlet deleted", nil)
}
