package models

import (
	"time"
)

// OutletStats holds aggregate counters maintained on an outlet document
type OutletStats struct {
	TotalProducts int     `json:"totalProducts" bson:"totalProducts"`
	TotalEvents   int     `json:"totalEvents" bson:"totalEvents"`
	TotalOrders   int     `json:"totalOrders" bson:"totalOrders"`
	Rating        float64 `json:"rating" bson:"rating"`
	ReviewCount   int     `json:"reviewCount" bson:"reviewCount"`
}

// Outlet represents a seller's storefront that owns catalog items
type Outlet struct {
	ID          string      `json:"id" bson:"_id"`
	OwnerID     string      `json:"ownerId" bson:"ownerId"`
	Name        string      `json:"name" bson:"name"`
	Type        string      `json:"type" bson:"type"`
	Description string      `json:"description" bson:"description"`
	Location    string      `json:"location" bson:"location"`
	Contact     string      `json:"contact" bson:"contact"`
	LogoURL     string      `json:"logoURL" bson:"logoURL"`
	BannerURL   string      `json:"bannerURL" bson:"bannerURL"`
	Stats       OutletStats `json:"stats" bson:"stats"`
	IsActive    bool        `json:"isActive" bson:"isActive"`
	IsVerified  bool        `json:"isVerified" bson:"isVerified"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OutletSummary is the read-time join attached to catalog items
type OutletSummary struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
}

// Summary returns the denormalized form attached to catalog items
func (o *Outlet) Summary() *OutletSummary {
	return &OutletSummary{ID: o.ID, Name: o.Name, Type: o.Type}
}
