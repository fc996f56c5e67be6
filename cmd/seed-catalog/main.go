package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iqbalrsyd/reog-commerce/internal/config"
	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
	"github.com/iqbalrsyd/reog-commerce/internal/repositories"
)

// Seeds the catalog with sample outlets, products and events for local
// development. Requires MONGO_URI; seeding an in-memory store would be
// pointless since it dies with the process.
func main() {
	cfg := config.Load()
	if cfg.Mongo.URI == "" {
		log.Fatal("MONGO_URI is required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := docstore.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	outletRepo := repositories.NewOutletRepository(store)
	productRepo := repositories.NewProductRepository(store)
	eventRepo := repositories.NewEventRepository(store)

	now := time.Now().UTC()
	sellerID := uuid.NewString()

	outlet := &models.Outlet{
		ID:          uuid.NewString(),
		OwnerID:     sellerID,
		Name:        "Sanggar Singo Mudo",
		Type:        "sanggar",
		Description: "Workshop and performance group for traditional reog arts",
		Location:    "Ponorogo, Jawa Timur",
		Contact:     "+62 812 0000 0000",
		IsActive:    true,
		IsVerified:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := outletRepo.Put(ctx, outlet); err != nil {
		log.Fatalf("Failed to seed outlet: %v", err)
	}
	log.Printf("Seeded outlet %s", outlet.ID)

	products := []*models.Product{
		{
			ID:          uuid.NewString(),
			OutletID:    outlet.ID,
			SellerID:    sellerID,
			Name:        "Topeng Bujang Ganong",
			Description: "Hand-carved wooden mask, painted and finished",
			Category:    "Kerajinan",
			Price:       models.PriceRange{Min: 350000, Max: 500000},
			Stock:       12,
			Condition:   "Baru",
			AdditionalInfo: []models.AdditionalInfo{
				{Label: "Material", Value: "Dadap wood"},
				{Label: "Size", Value: "30 x 25 cm"},
			},
			Images:    []string{"https://example.com/images/topeng-1.jpg"},
			Tags:      []string{"topeng", "kayu"},
			Featured:  true,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			OutletID:    outlet.ID,
			SellerID:    sellerID,
			Name:        "Kaos Reog Ponorogo",
			Description: "Cotton shirt with dadak merak print",
			Category:    "Pakaian",
			Price:       models.PriceRange{Min: 85000},
			Stock:       40,
			Condition:   "Baru",
			AdditionalInfo: []models.AdditionalInfo{
				{Label: "Material", Value: "Cotton combed 30s"},
			},
			Images:    []string{"https://example.com/images/kaos-1.jpg"},
			Tags:      []string{"kaos", "merchandise"},
			IsActive:  true,
			CreatedAt: now.Add(time.Minute),
			UpdatedAt: now.Add(time.Minute),
		},
	}
	for _, p := range products {
		if err := productRepo.Put(ctx, p); err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.Name, err)
		}
		log.Printf("Seeded product %s", p.Name)
	}

	event := &models.Event{
		ID:          uuid.NewString(),
		OutletID:    outlet.ID,
		OrganizerID: sellerID,
		Name:        "Festival Reog Nasional",
		Description: "Annual national reog festival at the town square",
		Category:    "Festival",
		Date:        now.AddDate(0, 1, 0),
		StartTime:   "19:00",
		EndTime:     "23:00",
		Location: models.EventLocation{
			Name:    "Alun-Alun Ponorogo",
			Address: "Jl. Alun-Alun Utara, Ponorogo",
		},
		Capacity: 500,
		TicketCategories: []models.TicketCategory{
			{Category: "VIP", Price: 150000, Benefits: "Front row seating, merchandise", Quota: 50},
			{Category: "Reguler", Price: 50000, Benefits: "Standing area", Quota: 450},
		},
		Images:       []string{"https://example.com/images/festival-1.jpg"},
		EventProgram: []string{"Opening parade", "Dadak merak showcase", "Closing ceremony"},
		Tags:         []string{"festival", "reog"},
		Status:       models.EventStatusUpcoming,
		IsActive:     true,
		Featured:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	event.RecomputeRemaining()
	if err := eventRepo.Put(ctx, event); err != nil {
		log.Fatalf("Failed to seed event: %v", err)
	}
	log.Printf("Seeded event %s", event.Name)

	log.Println("Seeding complete")
}
