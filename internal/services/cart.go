package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// CartRepository interface for cart data operations
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// CartService handles cart business logic. Mutations on one user's cart
// are serialized through a per-user mutex, so two concurrent adds cannot
// interleave their read-modify-write cycles.
type CartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	eventRepo   EventRepository

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, productRepo ProductRepository, eventRepo EventRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		eventRepo:   eventRepo,
		userLocks:   make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex guarding one user's cart, creating it on
// first use
func (s *CartService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return s.getOrCreate(ctx, userID)
}

// getOrCreate loads the user's cart document, persisting an empty shell
// when none exists yet. Callers must hold the user lock.
func (s *CartService) getOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		cart = models.NewCart(userID)
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddProduct puts quantity units of a product in the user's cart. An
// existing line for the same product is incremented. The stock check
// compares the requested quantity against current stock only, not against
// what the cart already holds.
func (s *CartService) AddProduct(ctx context.Context, userID, productID string, quantity, selectedPrice int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidQuantity)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotAvailable, productID)
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: requested %d, stock %d", models.ErrInsufficientStock, quantity, product.Stock)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindProductLine(productID); i >= 0 {
		cart.Products[i].Quantity += quantity
		if selectedPrice > 0 {
			cart.Products[i].SelectedPrice = selectedPrice
		}
	} else {
		cart.Products = append(cart.Products, models.CartProductLine{
			ProductID:     productID,
			Quantity:      quantity,
			Price:         product.Price,
			SelectedPrice: selectedPrice,
			AddedAt:       time.Now().UTC(),
		})
	}

	return s.persist(ctx, cart)
}

// UpdateProductQuantity sets the quantity of an existing product line.
// The new quantity is re-validated against current stock, not current
// price; the line's price snapshot stays as taken at add-time.
func (s *CartService) UpdateProductQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidQuantity)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindProductLine(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotInCart, productID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: requested %d, stock %d", models.ErrInsufficientStock, quantity, product.Stock)
	}
	cart.Products[i].Quantity = quantity

	return s.persist(ctx, cart)
}

// RemoveProduct drops a product line from the cart. Removing a product
// that is not in the cart is a no-op.
func (s *CartService) RemoveProduct(ctx context.Context, userID, productID string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindProductLine(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Products = append(cart.Products[:i], cart.Products[i+1:]...)

	return s.persist(ctx, cart)
}

// AddTickets puts quantity tickets of one event category in the cart.
// Lines are keyed by (event, category); adding the same category again
// increments the existing line.
func (s *CartService) AddTickets(ctx context.Context, userID, eventID, category string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidQuantity)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsAvailable() {
		return nil, fmt.Errorf("%w: event %s", models.ErrNotAvailable, eventID)
	}

	tc, ok := event.TicketCategoryByLabel(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ticket category %q", models.ErrInvalidInput, category)
	}
	if tc.IsSoldOut() {
		return nil, fmt.Errorf("%w: category %q", models.ErrTicketsSoldOut, category)
	}
	if quantity > tc.Available() {
		return nil, fmt.Errorf("%w: requested %d, available %d", models.ErrInsufficientStock, quantity, tc.Available())
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	lineID := models.TicketLineID(eventID, category)
	if i := cart.FindTicketLine(lineID); i >= 0 {
		cart.Events[i].Quantity += quantity
	} else {
		cart.Events = append(cart.Events, models.CartTicketLine{
			ID:       lineID,
			EventID:  eventID,
			Category: category,
			Quantity: quantity,
			Price:    tc.Price,
			Benefits: tc.Benefits,
			AddedAt:  time.Now().UTC(),
		})
	}

	return s.persist(ctx, cart)
}

// UpdateTicketQuantity sets the quantity of an existing ticket line
func (s *CartService) UpdateTicketQuantity(ctx context.Context, userID, eventID, category string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidQuantity)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindTicketLine(models.TicketLineID(eventID, category))
	if i < 0 {
		return nil, fmt.Errorf("%w: tickets for event %s category %q", models.ErrNotInCart, eventID, category)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tc, ok := event.TicketCategoryByLabel(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ticket category %q", models.ErrInvalidInput, category)
	}
	if quantity > tc.Available() {
		return nil, fmt.Errorf("%w: requested %d, available %d", models.ErrInsufficientStock, quantity, tc.Available())
	}
	cart.Events[i].Quantity = quantity

	return s.persist(ctx, cart)
}

// RemoveTickets drops a ticket line from the cart. Removing a line that
// is not in the cart is a no-op.
func (s *CartService) RemoveTickets(ctx context.Context, userID, eventID, category string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindTicketLine(models.TicketLineID(eventID, category))
	if i < 0 {
		return cart, nil
	}
	cart.Events = append(cart.Events[:i], cart.Events[i+1:]...)

	return s.persist(ctx, cart)
}

// ClearCart replaces the user's cart with an empty one. Clearing an
// already empty cart is a no-op that still succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart := models.NewCart(userID)
	return s.persist(ctx, cart)
}

// persist recomputes the cart totals and saves the document. Callers must
// hold the user lock.
func (s *CartService) persist(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.Recompute()
	cart.UpdatedAt = time.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
