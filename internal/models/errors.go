package models

import "errors"

// Common errors used throughout the application
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrOutletNotFound    = errors.New("outlet not found")
	ErrNotInCart         = errors.New("item not found in cart")
	ErrNotAvailable      = errors.New("item is not available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTicketsSoldOut    = errors.New("tickets are sold out")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrInvalidInput      = errors.New("invalid input")
)

// ErrorCode returns the stable machine-readable code for a known error,
// or INTERNAL_SERVER_ERROR for anything else
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrOutletNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNotInCart):
		return "NOT_IN_CART"
	case errors.Is(err, ErrNotAvailable):
		return "NOT_AVAILABLE"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrTicketsSoldOut):
		return "TICKETS_SOLD_OUT"
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// ErrorStatus returns the HTTP status equivalent for a known error
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrOutletNotFound),
		errors.Is(err, ErrNotInCart):
		return 404
	case errors.Is(err, ErrUnauthorized):
		return 403
	case errors.Is(err, ErrNotAvailable),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrTicketsSoldOut),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidInput):
		return 400
	default:
		return 500
	}
}
