package models

import (
	"time"
)

// PriceRange is a min/max price band. Max is zero when the product has a
// single fixed price.
type PriceRange struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max,omitempty" bson:"max,omitempty"`
}

// ProductStats holds the monotonically increasing counters tracked on a
// product document
type ProductStats struct {
	Views       int     `json:"views" bson:"views"`
	Likes       int     `json:"likes" bson:"likes"`
	Sold        int     `json:"sold" bson:"sold"`
	Rating      float64 `json:"rating" bson:"rating"`
	ReviewCount int     `json:"reviewCount" bson:"reviewCount"`
}

// AdditionalInfo is one label/value pair of extra product detail, e.g.
// material or dimensions
type AdditionalInfo struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// Product represents a physical item listed in the catalog
type Product struct {
	ID             string           `json:"id" bson:"_id"`
	OutletID       string           `json:"outletId" bson:"outletId"`
	SellerID       string           `json:"sellerId" bson:"sellerId"`
	Name           string           `json:"name" bson:"name"`
	Description    string           `json:"description" bson:"description"`
	Category       string           `json:"category" bson:"category"`
	Price          PriceRange       `json:"price" bson:"price"`
	Stock          int              `json:"stock" bson:"stock"`
	Condition      string           `json:"condition" bson:"condition"`
	AdditionalInfo []AdditionalInfo `json:"additionalInfo" bson:"additionalInfo"`
	Images         []string         `json:"images" bson:"images"`
	Tags           []string         `json:"tags" bson:"tags"`
	Featured       bool             `json:"featured" bson:"featured"`
	Stats          ProductStats     `json:"stats" bson:"stats"`
	IsActive       bool             `json:"isActive" bson:"isActive"`
	IsDeleted      bool             `json:"isDeleted" bson:"isDeleted"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt" bson:"updatedAt"`

	// Denormalized read-time join, never persisted on the product document
	Outlet *OutletSummary `json:"outlet,omitempty" bson:"-"`
}

// IsAvailable returns true if the product can be listed and sold
func (p *Product) IsAvailable() bool {
	return p.IsActive && !p.IsDeleted
}

// MinPrice returns the lower bound of the price range, used as the unit
// price when the buyer picks no specific variant
func (p *Product) MinPrice() int {
	return p.Price.Min
}
