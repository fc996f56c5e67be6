package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

// EventHandler handles event catalog HTTP endpoints
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := services.EventFilters{
		Category: q.Get("category"),
		Status:   models.EventStatus(q.Get("status")),
		Featured: q.Get("featured") == "true",
		Page:     intQuery(q.Get("page")),
		Limit:    intQuery(q.Get("limit")),
	}

	result, err := h.events.ListEvents(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, "events retrieved", result.Events, result.Pagination)
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFromContext(r.Context())

	event, err := h.events.GetEvent(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "event retrieved", event)
}

// ByOutlet handles GET /api/events/outlet/{outletId}
func (h *EventHandler) ByOutlet(w http.ResponseWriter, r *http.Request) {
	outletID := chi.URLParam(r, "outletId")
	q := r.URL.Query()

	events, err := h.events.ListEventsByOutlet(r.Context(), outletID, models.EventStatus(q.Get("status")), intQuery(q.Get("limit")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "events retrieved", events)
}

// Create handles POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := &models.EventCreateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	sellerID := middleware.UserIDFromContext(r.Context())
	event, err := h.events.CreateEvent(r.Context(), sellerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "event created", event)
}

// Update handles PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	req := &models.EventUpdateRequest{}
	if err := decodeBody(r, req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	id := chi.URLParam(r, "id")
	sellerID := middleware.UserIDFromContext(r.Context())
	event, err := h.events.UpdateEvent(r.Context(), id, sellerID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "event updated", event)
}

// Delete handles DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sellerID := middleware.UserIDFromContext(r.Context())

	if err := h.events.DeleteEvent(r.Context(), id, sellerID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "event deleted", nil)
}
