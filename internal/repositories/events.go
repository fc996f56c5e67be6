package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// EventRepository handles event document operations
type EventRepository struct {
	store docstore.Store
}

// NewEventRepository creates a new event repository
func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event := &models.Event{}
	err := r.store.Get(ctx, CollectionEvents, id, event)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Put creates or replaces an event document
func (r *EventRepository) Put(ctx context.Context, event *models.Event) error {
	if err := r.store.Put(ctx, CollectionEvents, event.ID, event); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// Patch applies a partial update to an event document
func (r *EventRepository) Patch(ctx context.Context, id string, patch map[string]any) error {
	err := r.store.Update(ctx, CollectionEvents, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to patch event: %w", err)
	}
	return nil
}

// Query runs an equality-filtered read against the events collection.
// Missing-index rejections pass through so the caller can re-plan.
func (r *EventRepository) Query(ctx context.Context, q docstore.Query) ([]models.Event, error) {
	var events []models.Event
	if err := r.store.Query(ctx, CollectionEvents, q, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching the filters
func (r *EventRepository) Count(ctx context.Context, filters []docstore.Filter) (int, error) {
	return r.store.Count(ctx, CollectionEvents, filters)
}
