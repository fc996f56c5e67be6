package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iqbalrsyd/reog-commerce/internal/cache"
	"github.com/iqbalrsyd/reog-commerce/internal/config"
	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/handlers"
	"github.com/iqbalrsyd/reog-commerce/internal/middleware"
	"github.com/iqbalrsyd/reog-commerce/internal/repositories"
	"github.com/iqbalrsyd/reog-commerce/internal/server"
	"github.com/iqbalrsyd/reog-commerce/internal/services"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	var listingCache *cache.Client
	if cfg.Redis.Addr != "" {
		listingCache, err = cache.New(cfg.Redis.Addr, cfg.Redis.TTL)
		if err != nil {
			log.Printf("Redis unavailable, listing cache disabled: %v", err)
			listingCache = nil
		} else {
			defer listingCache.Close()
		}
	} else {
		log.Println("REDIS_ADDR not set, listing cache disabled")
	}

	productRepo := repositories.NewProductRepository(store)
	eventRepo := repositories.NewEventRepository(store)
	outletRepo := repositories.NewOutletRepository(store)
	cartRepo := repositories.NewCartRepository(store)

	limits := services.CatalogLimits{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		MaxScanSize:     cfg.Catalog.MaxScanSize,
	}

	productService := services.NewProductService(productRepo, outletRepo, listingCache, limits)
	eventService := services.NewEventService(eventRepo, outletRepo, listingCache, limits)
	outletService := services.NewOutletService(outletRepo)
	cartService := services.NewCartService(cartRepo, productRepo, eventRepo)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret)
	router := server.NewRouter(server.Handlers{
		Products: handlers.NewProductHandler(productService),
		Events:   handlers.NewEventHandler(eventService),
		Outlets:  handlers.NewOutletHandler(outletService),
		Cart:     handlers.NewCartHandler(cartService),
	}, auth)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// openStore connects to Mongo when configured and falls back to the
// in-memory store otherwise, so the server runs for local development
// without a database.
func openStore(cfg *config.Config) (docstore.Store, error) {
	if cfg.Mongo.URI == "" {
		log.Println("MONGO_URI not set, using in-memory document store")
		return docstore.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := docstore.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to MongoDB database %s", cfg.Mongo.Database)
	return store, nil
}
