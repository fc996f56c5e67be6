package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// OutletRepository interface for outlet data operations
type OutletRepository interface {
	GetByID(ctx context.Context, id string) (*models.Outlet, error)
	Put(ctx context.Context, outlet *models.Outlet) error
	Patch(ctx context.Context, id string, patch map[string]any) error
	GetByOwner(ctx context.Context, ownerID string) ([]models.Outlet, error)
}

// OutletService handles outlet business logic
type OutletService struct {
	outletRepo OutletRepository
}

// NewOutletService creates a new outlet service
func NewOutletService(outletRepo OutletRepository) *OutletService {
	return &OutletService{outletRepo: outletRepo}
}

// GetOutlet retrieves a single outlet by id
func (s *OutletService) GetOutlet(ctx context.Context, id string) (*models.Outlet, error) {
	return s.outletRepo.GetByID(ctx, id)
}

// ListOutletsByOwner retrieves all outlets owned by a user
func (s *OutletService) ListOutletsByOwner(ctx context.Context, ownerID string) ([]models.Outlet, error) {
	return s.outletRepo.GetByOwner(ctx, ownerID)
}

// CreateOutlet creates a new outlet owned by the caller
func (s *OutletService) CreateOutlet(ctx context.Context, ownerID string, req *models.OutletCreateRequest) (*models.Outlet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	outletType := req.Type
	if outletType == "" {
		outletType = "produk"
	}

	now := time.Now().UTC()
	outlet := &models.Outlet{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Type:        outletType,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.outletRepo.Put(ctx, outlet); err != nil {
		return nil, fmt.Errorf("failed to create outlet: %w", err)
	}
	return outlet, nil
}

// UpdateOutlet updates an existing outlet after an ownership check
func (s *OutletService) UpdateOutlet(ctx context.Context, id, ownerID string, req *models.OutletUpdateRequest) (*models.Outlet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	outlet, err := s.outletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outlet.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the outlet owner", models.ErrUnauthorized)
	}

	if req.Name != nil {
		outlet.Name = *req.Name
	}
	if req.Type != nil {
		outlet.Type = *req.Type
	}
	if req.Description != nil {
		outlet.Description = *req.Description
	}
	if req.Location != nil {
		outlet.Location = *req.Location
	}
	if req.Contact != nil {
		outlet.Contact = *req.Contact
	}
	if req.LogoURL != nil {
		outlet.LogoURL = *req.LogoURL
	}
	if req.BannerURL != nil {
		outlet.BannerURL = *req.BannerURL
	}
	outlet.UpdatedAt = time.Now().UTC()

	if err := s.outletRepo.Put(ctx, outlet); err != nil {
		return nil, fmt.Errorf("failed to update outlet: %w", err)
	}
	return outlet, nil
}

// DeleteOutlet deactivates an outlet after an ownership check. Catalog
// items keep their outletId; their summary join simply stops resolving.
func (s *OutletService) DeleteOutlet(ctx context.Context, id, ownerID string) error {
	outlet, err := s.outletRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if outlet.OwnerID != ownerID {
		return fmt.Errorf("%w: not the outlet owner", models.ErrUnauthorized)
	}

	patch := map[string]any{
		"isActive":  false,
		"updatedAt": time.Now().UTC(),
	}
	if err := s.outletRepo.Patch(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to delete outlet: %w", err)
	}
	return nil
}

// resolveOutletSummary loads the summary join for a catalog item, best
// effort. A missing or unreadable outlet leaves the item without a join
// rather than failing the read.
func resolveOutletSummary(ctx context.Context, repo OutletRepository, outletID string) *models.OutletSummary {
	if outletID == "" {
		return nil
	}
	outlet, err := repo.GetByID(ctx, outletID)
	if err != nil {
		if !errors.Is(err, models.ErrOutletNotFound) {
			log.Printf("failed to resolve outlet %s: %v", outletID, err)
		}
		return nil
	}
	return outlet.Summary()
}
