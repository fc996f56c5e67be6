package models

import (
	"errors"
	"strings"
	"time"
)

// ProductCreateRequest represents the data needed to create a new product
type ProductCreateRequest struct {
	OutletID       string           `json:"outletId"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Price          PriceRange       `json:"price"`
	Stock          int              `json:"stock"`
	Condition      string           `json:"condition"`
	AdditionalInfo []AdditionalInfo `json:"additionalInfo"`
	Images         []string         `json:"images"`
	Tags           []string         `json:"tags"`
}

// Validate validates product creation data
func (req *ProductCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.Price.Min <= 0 {
		return errors.New("price minimum is required")
	}
	if req.Price.Max != 0 && req.Price.Max < req.Price.Min {
		return errors.New("price maximum must not be below minimum")
	}
	if req.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if len(req.AdditionalInfo) == 0 {
		return errors.New("additional info is required")
	}
	if len(req.Images) == 0 {
		return errors.New("at least one product image is required")
	}
	return nil
}

// ProductUpdateRequest represents the fields that can be updated on a product.
// Nil pointers mean "leave unchanged".
type ProductUpdateRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Price       *PriceRange `json:"price"`
	Stock       *int        `json:"stock"`
	Condition   *string     `json:"condition"`
	Images      []string    `json:"images"`
	Tags        []string    `json:"tags"`
	Featured    *bool       `json:"featured"`
}

// Validate validates product update data
func (req *ProductUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if req.Price != nil && req.Price.Min <= 0 {
		return errors.New("price minimum is required")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	OutletID         string           `json:"outletId"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	Date             time.Time        `json:"date"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	Location         EventLocation    `json:"location"`
	Capacity         int              `json:"capacity"`
	TicketCategories []TicketCategory `json:"ticketCategories"`
	Images           []string         `json:"images"`
	EventProgram     []string         `json:"eventProgram"`
	Tags             []string         `json:"tags"`
	VideoURL         string           `json:"videoURL"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return errors.New("description is required")
	}
	if req.Date.IsZero() {
		return errors.New("date is required")
	}
	if req.Location.Name == "" && req.Location.Address == "" {
		return errors.New("location is required")
	}
	if req.Capacity <= 0 {
		return errors.New("capacity is required")
	}
	if len(req.TicketCategories) == 0 {
		return errors.New("at least one ticket category is required")
	}
	for _, tc := range req.TicketCategories {
		if strings.TrimSpace(tc.Category) == "" {
			return errors.New("ticket category label is required")
		}
		if tc.Price < 0 {
			return errors.New("ticket price cannot be negative")
		}
		if tc.Quota <= 0 {
			return errors.New("ticket quota must be greater than 0")
		}
	}
	return nil
}

// EventUpdateRequest represents the fields that can be updated on an event.
// Nil pointers mean "leave unchanged".
type EventUpdateRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Category         *string          `json:"category"`
	Date             *time.Time       `json:"date"`
	StartTime        *string          `json:"startTime"`
	EndTime          *string          `json:"endTime"`
	Location         *EventLocation   `json:"location"`
	Capacity         *int             `json:"capacity"`
	TicketCategories []TicketCategory `json:"ticketCategories"`
	EventProgram     []string         `json:"eventProgram"`
	Tags             []string         `json:"tags"`
	VideoURL         *string          `json:"videoURL"`
	Status           *EventStatus     `json:"status"`
	Featured         *bool            `json:"featured"`
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return errors.New("capacity must be greater than 0")
	}
	for _, tc := range req.TicketCategories {
		if tc.Sold > tc.Quota {
			return errors.New("ticket sold count cannot exceed quota")
		}
	}
	return nil
}

// OutletCreateRequest represents the data needed to create a new outlet
type OutletCreateRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	LogoURL     string `json:"logoURL"`
	BannerURL   string `json:"bannerURL"`
}

// Validate validates outlet creation data
func (req *OutletCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// OutletUpdateRequest represents the fields that can be updated on an outlet
type OutletUpdateRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Contact     *string `json:"contact"`
	LogoURL     *string `json:"logoURL"`
	BannerURL   *string `json:"bannerURL"`
}

// Validate validates outlet update data
func (req *OutletUpdateRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
