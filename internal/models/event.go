package models

import (
	"time"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// TicketCategory is a named price/quota tier within one event (e.g. VIP, Reguler)
type TicketCategory struct {
	Category string `json:"category" bson:"category"`
	Price    int    `json:"price" bson:"price"`
	Benefits string `json:"benefits" bson:"benefits"`
	Quota    int    `json:"quota" bson:"quota"`
	Sold     int    `json:"sold" bson:"sold"`
}

// Available returns the number of tickets still purchasable in this category
func (tc *TicketCategory) Available() int {
	remaining := tc.Quota - tc.Sold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsSoldOut returns true if the category has no remaining quota
func (tc *TicketCategory) IsSoldOut() bool {
	return tc.Available() == 0
}

// EventLocation describes where an event takes place
type EventLocation struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
}

// EventStats holds the monotonically increasing counters tracked on an event document
type EventStats struct {
	Views       int     `json:"views" bson:"views"`
	Interested  int     `json:"interested" bson:"interested"`
	TicketsSold int     `json:"ticketsSold" bson:"ticketsSold"`
	Rating      float64 `json:"rating" bson:"rating"`
	ReviewCount int     `json:"reviewCount" bson:"reviewCount"`
}

// Event represents a ticketed event listed in the catalog
type Event struct {
	ID               string           `json:"id" bson:"_id"`
	OutletID         string           `json:"outletId" bson:"outletId"`
	OrganizerID      string           `json:"organizerId" bson:"organizerId"`
	Name             string           `json:"name" bson:"name"`
	Description      string           `json:"description" bson:"description"`
	Category         string           `json:"category" bson:"category"`
	Date             time.Time        `json:"date" bson:"date"`
	StartTime        string           `json:"startTime" bson:"startTime"`
	EndTime          string           `json:"endTime" bson:"endTime"`
	Location         EventLocation    `json:"location" bson:"location"`
	Capacity         int              `json:"capacity" bson:"capacity"`
	RemainingTickets int              `json:"remainingTickets" bson:"remainingTickets"`
	TicketCategories []TicketCategory `json:"ticketCategories" bson:"ticketCategories"`
	Images           []string         `json:"images" bson:"images"`
	VideoURL         string           `json:"videoURL" bson:"videoURL"`
	EventProgram     []string         `json:"eventProgram" bson:"eventProgram"`
	Tags             []string         `json:"tags" bson:"tags"`
	Stats            EventStats       `json:"stats" bson:"stats"`
	Status           EventStatus      `json:"status" bson:"status"`
	IsActive         bool             `json:"isActive" bson:"isActive"`
	Featured         bool             `json:"featured" bson:"featured"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updatedAt"`

	// Denormalized read-time join, never persisted on the event document
	Outlet *OutletSummary `json:"outlet,omitempty" bson:"-"`
}

// IsAvailable returns true if the event can be listed and its tickets sold
func (e *Event) IsAvailable() bool {
	return e.IsActive
}

// TicketCategoryByLabel finds a ticket category by its label
func (e *Event) TicketCategoryByLabel(label string) (*TicketCategory, bool) {
	for i := range e.TicketCategories {
		if e.TicketCategories[i].Category == label {
			return &e.TicketCategories[i], true
		}
	}
	return nil, false
}

// RecomputeRemaining recalculates RemainingTickets from the ticket categories
func (e *Event) RecomputeRemaining() {
	total := 0
	sold := 0
	for _, tc := range e.TicketCategories {
		total += tc.Quota
		sold += tc.Sold
	}
	remaining := total - sold
	if remaining < 0 {
		remaining = 0
	}
	e.RemainingTickets = remaining
}
