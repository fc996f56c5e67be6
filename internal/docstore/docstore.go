// Package docstore provides access to a schemaless document store that
// supports key lookups, equality filters and single-field ordering. Queries
// that combine more than one equality filter with an order-by are rejected
// unless the store has a matching composite index; callers are expected to
// detect that rejection with IsMissingIndex and re-plan.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// MissingIndexError signals that the store rejected a query because no
// composite index covers the requested filter/order combination
type MissingIndexError struct {
	Collection string
	Detail     string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("query on %s requires a composite index: %s", e.Collection, e.Detail)
}

// IsMissingIndex reports whether err is a missing-index rejection
func IsMissingIndex(err error) bool {
	var mie *MissingIndexError
	return errors.As(err, &mie)
}

// Filter is a single equality predicate on a document field
type Filter struct {
	Field string
	Value any
}

// Query describes a filtered, optionally ordered, optionally limited read
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Increment marks a patch value as an atomic counter increment applied at
// the store layer, not read-then-written-back by the caller
type Increment struct {
	By int
}

// Store is the document store adapter. Implementations must return
// ErrNotFound from Get for absent documents and a MissingIndexError from
// Query when the filter/order combination is not served by an index.
type Store interface {
	// Get loads the document with the given id into dest
	Get(ctx context.Context, collection, id string, dest any) error
	// Put creates or wholesale-replaces the document with the given id
	Put(ctx context.Context, collection, id string, doc any) error
	// Update applies a partial patch of dotted field paths. Values of type
	// Increment are applied as atomic counter increments.
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	// Delete removes the document; deleting an absent document is not an error
	Delete(ctx context.Context, collection, id string) error
	// Query runs an equality-filtered read into dest, which must be a
	// pointer to a slice
	Query(ctx context.Context, collection string, q Query, dest any) error
	// Count returns the number of documents matching the filters
	Count(ctx context.Context, collection string, filters []Filter) (int, error)
}
