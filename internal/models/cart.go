package models

import (
	"time"
)

// CartProductLine is a cart entry for a physical good. The price is a
// snapshot taken at add-time and is not refreshed when the catalog price
// changes later.
type CartProductLine struct {
	ProductID     string     `json:"productId" bson:"productId"`
	Quantity      int        `json:"quantity" bson:"quantity"`
	Price         PriceRange `json:"price" bson:"price"`
	SelectedPrice int        `json:"selectedPrice,omitempty" bson:"selectedPrice,omitempty"`
	AddedAt       time.Time  `json:"addedAt" bson:"addedAt"`
}

// UnitPrice returns the effective unit price for the line. An explicit
// user-chosen price overrides the snapshot minimum.
func (l *CartProductLine) UnitPrice() int {
	if l.SelectedPrice > 0 {
		return l.SelectedPrice
	}
	return l.Price.Min
}

// CartTicketLine is a cart entry for event tickets. There is one line per
// (event, ticket category) pair, identified by ID = eventId + "_" + category.
type CartTicketLine struct {
	ID       string    `json:"id" bson:"_id"`
	EventID  string    `json:"eventId" bson:"eventId"`
	Category string    `json:"category" bson:"category"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Price    int       `json:"price" bson:"price"`
	Benefits string    `json:"benefits" bson:"benefits"`
	AddedAt  time.Time `json:"addedAt" bson:"addedAt"`
}

// TicketLineID builds the composite identity of a ticket line
func TicketLineID(eventID, category string) string {
	return eventID + "_" + category
}

// Cart is the single cart document kept per user, keyed by user id
type Cart struct {
	ID          string            `json:"id" bson:"_id"`
	UserID      string            `json:"userId" bson:"userId"`
	Products    []CartProductLine `json:"products" bson:"products"`
	Events      []CartTicketLine  `json:"events" bson:"events"`
	TotalItems  int               `json:"totalItems" bson:"totalItems"`
	TotalAmount int               `json:"totalAmount" bson:"totalAmount"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// NewCart returns an empty cart shell for the given user
func NewCart(userID string) *Cart {
	return &Cart{
		ID:        userID,
		UserID:    userID,
		Products:  []CartProductLine{},
		Events:    []CartTicketLine{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Recompute recalculates TotalItems and TotalAmount from the line items.
// The derived fields are never patched incrementally; every mutation calls
// Recompute before the cart is persisted.
func (c *Cart) Recompute() {
	items := 0
	amount := 0
	for i := range c.Products {
		items += c.Products[i].Quantity
		amount += c.Products[i].UnitPrice() * c.Products[i].Quantity
	}
	for i := range c.Events {
		items += c.Events[i].Quantity
		amount += c.Events[i].Price * c.Events[i].Quantity
	}
	c.TotalItems = items
	c.TotalAmount = amount
}

// FindProductLine returns the index of the line for productID, or -1
func (c *Cart) FindProductLine(productID string) int {
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// FindTicketLine returns the index of the ticket line with the given
// composite id, or -1
func (c *Cart) FindTicketLine(lineID string) int {
	for i := range c.Events {
		if c.Events[i].ID == lineID {
			return i
		}
	}
	return -1
}
