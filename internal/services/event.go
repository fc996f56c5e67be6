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

// EventRepository interface for event data operations
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Put(ctx context.Context, event *models.Event) error
	Patch(ctx context.Context, id string, patch map[string]any) error
	Query(ctx context.Context, q docstore.Query) ([]models.Event, error)
	Count(ctx context.Context, filters []docstore.Filter) (int, error)
}

var eventBaseline = docstore.Filter{Field: "isActive", Value: true}

// EventService handles event catalog business logic
type EventService struct {
	eventRepo  EventRepository
	outletRepo OutletRepository
	cache      *cache.Client
	limits     CatalogLimits
}

// NewEventService creates a new event service. cacheClient may be nil to
// disable listing-page caching.
func NewEventService(eventRepo EventRepository, outletRepo OutletRepository, cacheClient *cache.Client, limits CatalogLimits) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		outletRepo: outletRepo,
		cache:      cacheClient,
		limits:     limits.withDefaults(),
	}
}

// EventFilters represents the listing filters accepted by the event catalog
type EventFilters struct {
	Category string
	Status   models.EventStatus
	Featured bool
	Page     int
	Limit    int
}

// EventListResult is one page of the event catalog
type EventListResult struct {
	Events     []models.Event `json:"events"`
	Pagination Pagination     `json:"pagination"`
}

// ListEvents returns one page of active events matching the filters,
// soonest date first. Plan selection and the missing-index fallback work
// the same way as the product catalog.
func (s *EventService) ListEvents(ctx context.Context, filters EventFilters) (*EventListResult, error) {
	page, limit := normalizePage(filters.Page, filters.Limit, s.limits.DefaultPageSize, s.limits.MaxPageSize)

	cacheKey := fmt.Sprintf("events:list:category=%s:status=%s:featured=%t:page=%d:limit=%d",
		filters.Category, filters.Status, filters.Featured, page, limit)
	cached := &EventListResult{}
	if s.cache.GetJSON(ctx, cacheKey, cached) {
		return cached, nil
	}

	plan := selectPlan(eventExtraFilters(filters))
	fetch, inBound := s.limits.fetchWindow(page, limit)

	var result *EventListResult
	var err error
	if plan.kind == planInMemory || !inBound {
		result, err = s.listInMemory(ctx, filters, page, limit)
	} else {
		result, err = s.listPushed(ctx, plan, page, limit, fetch)
		if err != nil && docstore.IsMissingIndex(err) {
			log.Printf("event listing missing index, falling back to in-memory filtering: %v", err)
			result, err = s.listInMemory(ctx, filters, page, limit)
		}
	}
	if err != nil {
		return nil, err
	}

	s.attachOutlets(ctx, result.Events)
	s.cache.SetJSON(ctx, cacheKey, result)
	return result, nil
}

func eventExtraFilters(filters EventFilters) []docstore.Filter {
	var extras []docstore.Filter
	if filters.Category != "" {
		extras = append(extras, docstore.Filter{Field: "category", Value: filters.Category})
	}
	if filters.Status != "" {
		extras = append(extras, docstore.Filter{Field: "status", Value: string(filters.Status)})
	}
	if filters.Featured {
		extras = append(extras, docstore.Filter{Field: "featured", Value: true})
	}
	return extras
}

func (s *EventService) listPushed(ctx context.Context, plan queryPlan, page, limit, fetch int) (*EventListResult, error) {
	q := docstore.Query{
		Filters: []docstore.Filter{eventBaseline},
		OrderBy: "date",
		Limit:   fetch,
	}
	if plan.kind == planPushOne {
		q.Filters = append(q.Filters, plan.pushed)
	}

	events, err := s.eventRepo.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := s.eventRepo.Count(ctx, []docstore.Filter{eventBaseline})
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	start, end := pageWindow(len(events), page, limit)
	return &EventListResult{
		Events:     events[start:end],
		Pagination: makePagination(page, limit, total),
	}, nil
}

func (s *EventService) listInMemory(ctx context.Context, filters EventFilters, page, limit int) (*EventListResult, error) {
	q := docstore.Query{
		Filters: []docstore.Filter{eventBaseline},
		Limit:   s.limits.MaxScanSize,
	}
	events, err := s.eventRepo.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if filters.Category != "" && e.Category != filters.Category {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.Featured && !e.Featured {
			continue
		}
		filtered = append(filtered, e)
	}

	// Soonest first; equal dates keep insertion order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	start, end := pageWindow(len(filtered), page, limit)
	return &EventListResult{
		Events:     filtered[start:end],
		Pagination: makePagination(page, limit, len(filtered)),
	}, nil
}

// GetEvent retrieves a single event by id. Identified callers bump the
// view counter best effort.
func (s *EventService) GetEvent(ctx context.Context, id, userID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Outlet = resolveOutletSummary(ctx, s.outletRepo, event.OutletID)

	if userID != "" {
		patch := map[string]any{
			"stats.views": docstore.Increment{By: 1},
			"updatedAt":   time.Now().UTC(),
		}
		if err := s.eventRepo.Patch(ctx, id, patch); err != nil {
			log.Printf("failed to increment view count for event %s: %v", id, err)
		}
	}

	return event, nil
}

// ListEventsByOutlet returns the active events of one outlet, soonest
// first, optionally narrowed to a status. Unpaginated; an explicit limit
// caps the result, otherwise only the scan bound applies.
func (s *EventService) ListEventsByOutlet(ctx context.Context, outletID string, status models.EventStatus, limit int) ([]models.Event, error) {
	if limit < 1 {
		limit = s.limits.MaxScanSize
	}

	filters := []docstore.Filter{
		{Field: "outletId", Value: outletID},
		{Field: "isActive", Value: true},
	}
	if status != "" {
		filters = append(filters, docstore.Filter{Field: "status", Value: string(status)})
	}

	q := docstore.Query{Filters: filters, OrderBy: "date", Limit: limit}
	events, err := s.eventRepo.Query(ctx, q)
	if err == nil {
		s.attachOutlets(ctx, events)
		return events, nil
	}
	if !docstore.IsMissingIndex(err) {
		return nil, err
	}

	log.Printf("outlet event listing missing index, falling back to in-memory filtering: %v", err)
	broad := docstore.Query{
		Filters: []docstore.Filter{{Field: "outletId", Value: outletID}},
		Limit:   s.limits.MaxScanSize,
	}
	events, err = s.eventRepo.Query(ctx, broad)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.IsActive {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	s.attachOutlets(ctx, filtered)
	return filtered, nil
}

// CreateEvent creates a new event owned by the seller
func (s *EventService) CreateEvent(ctx context.Context, sellerID string, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	category := req.Category
	if category == "" {
		category = "Festival"
	}

	event := &models.Event{
		ID:               uuid.NewString(),
		OutletID:         req.OutletID,
		OrganizerID:      sellerID,
		Name:             req.Name,
		Description:      req.Description,
		Category:         category,
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Location:         req.Location,
		Capacity:         req.Capacity,
		TicketCategories: req.TicketCategories,
		Images:           req.Images,
		EventProgram:     req.EventProgram,
		Tags:             req.Tags,
		VideoURL:         req.VideoURL,
		Status:           models.EventStatusUpcoming,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	event.RecomputeRemaining()

	if err := s.eventRepo.Put(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.adjustOutletCounter(ctx, req.OutletID, "stats.totalEvents", 1)
	s.cache.Invalidate(ctx, "events:list:*")
	return event, nil
}

// UpdateEvent updates an existing event after an ownership check
func (s *EventService) UpdateEvent(ctx context.Context, id, sellerID string, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != sellerID {
		return nil, fmt.Errorf("%w: not the event owner", models.ErrUnauthorized)
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.TicketCategories != nil {
		event.TicketCategories = req.TicketCategories
	}
	if req.EventProgram != nil {
		event.EventProgram = req.EventProgram
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if req.VideoURL != nil {
		event.VideoURL = *req.VideoURL
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}
	event.RecomputeRemaining()
	event.UpdatedAt = time.Now().UTC()

	if err := s.eventRepo.Put(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.cache.Invalidate(ctx, "events:list:*")
	return event, nil
}

// DeleteEvent deactivates an event after an ownership check
func (s *EventService) DeleteEvent(ctx context.Context, id, sellerID string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != sellerID {
		return fmt.Errorf("%w: not the event owner", models.ErrUnauthorized)
	}

	patch := map[string]any{
		"isActive":  false,
		"status":    string(models.EventStatusCancelled),
		"updatedAt": time.Now().UTC(),
	}
	if err := s.eventRepo.Patch(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.adjustOutletCounter(ctx, event.OutletID, "stats.totalEvents", -1)
	s.cache.Invalidate(ctx, "events:list:*")
	return nil
}

func (s *EventService) attachOutlets(ctx context.Context, events []models.Event) {
	for i := range events {
		events[i].Outlet = resolveOutletSummary(ctx, s.outletRepo, events[i].OutletID)
	}
}

func (s *EventService) adjustOutletCounter(ctx context.Context, outletID, field string, delta int) {
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
