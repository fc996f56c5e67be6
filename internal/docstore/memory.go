package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

type memEntry struct {
	id  string
	doc map[string]any
}

type indexSpec struct {
	fields  map[string]bool
	orderBy string
}

// MemoryStore is an in-memory Store used by tests and local development.
// It reproduces the production store's constraint that a query combining
// more than one equality filter with an order-by needs a registered
// composite index, so the planner's fallback path can be exercised without
// a live database. Documents keep insertion order, which makes equal-key
// sorts stable.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]memEntry
	indexes     map[string][]indexSpec
}

// NewMemoryStore creates an empty in-memory store with no composite indexes
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]memEntry),
		indexes:     make(map[string][]indexSpec),
	}
}

// RegisterIndex declares a composite index so queries filtering on exactly
// the given fields combined with the given order-by are accepted
func (s *MemoryStore) RegisterIndex(collection, orderBy string, fields ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec := indexSpec{fields: make(map[string]bool, len(fields)), orderBy: orderBy}
	for _, f := range fields {
		spec.fields[f] = true
	}
	s.indexes[collection] = append(s.indexes[collection], spec)
}

// Get loads the document with the given id into dest
func (s *MemoryStore) Get(ctx context.Context, collection, id string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.collections[collection] {
		if e.id == id {
			return decodeDoc(e.doc, dest)
		}
	}
	return ErrNotFound
}

// Put creates or replaces the document, preserving its insertion position
func (s *MemoryStore) Put(ctx context.Context, collection, id string, doc any) error {
	m, err := encodeDoc(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.collections[collection]
	for i := range entries {
		if entries[i].id == id {
			entries[i].doc = m
			return nil
		}
	}
	s.collections[collection] = append(entries, memEntry{id: id, doc: m})
	return nil
}

// Update applies a partial patch of dotted field paths
func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.collections[collection]
	for i := range entries {
		if entries[i].id != id {
			continue
		}
		for path, value := range patch {
			if inc, ok := value.(Increment); ok {
				current, _ := fieldValue(entries[i].doc, path)
				base, _ := current.(float64)
				setPath(entries[i].doc, path, base+float64(inc.By))
				continue
			}
			normalized, err := normalizeValue(value)
			if err != nil {
				return err
			}
			setPath(entries[i].doc, path, normalized)
		}
		return nil
	}
	return ErrNotFound
}

// Delete removes the document; absent documents are a no-op
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.collections[collection]
	for i := range entries {
		if entries[i].id == id {
			s.collections[collection] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// Query runs an equality-filtered, optionally ordered read into dest
func (s *MemoryStore) Query(ctx context.Context, collection string, q Query, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(q.Filters) > 1 && q.OrderBy != "" && !s.hasIndex(collection, q) {
		fields := make([]string, 0, len(q.Filters))
		for _, f := range q.Filters {
			fields = append(fields, f.Field)
		}
		return &MissingIndexError{
			Collection: collection,
			Detail:     fmt.Sprintf("(%s) orderBy %s", strings.Join(fields, ", "), q.OrderBy),
		}
	}

	normalized, err := normalizeFilters(q.Filters)
	if err != nil {
		return err
	}

	var matched []map[string]any
	for _, e := range s.collections[collection] {
		if matchesFilters(e.doc, normalized) {
			matched = append(matched, e.doc)
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			a, _ := fieldValue(matched[i], q.OrderBy)
			b, _ := fieldValue(matched[j], q.OrderBy)
			if q.Desc {
				return compareValues(a, b) > 0
			}
			return compareValues(a, b) < 0
		})
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return decodeDocs(matched, dest)
}

// Count returns the number of documents matching the filters
func (s *MemoryStore) Count(ctx context.Context, collection string, filters []Filter) (int, error) {
	normalized, err := normalizeFilters(filters)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.collections[collection] {
		if matchesFilters(e.doc, normalized) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) hasIndex(collection string, q Query) bool {
	for _, spec := range s.indexes[collection] {
		if spec.orderBy != q.OrderBy || len(spec.fields) != len(q.Filters) {
			continue
		}
		covered := true
		for _, f := range q.Filters {
			if !spec.fields[f.Field] {
				covered = false
				break
			}
		}
		if covered {
			return true
		}
	}
	return false
}

func encodeDoc(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return m, nil
}

func decodeDoc(m map[string]any, dest any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

func decodeDocs(docs []map[string]any, dest any) error {
	if docs == nil {
		docs = []map[string]any{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

func normalizeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unsupported value %v: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFilters(filters []Filter) ([]Filter, error) {
	out := make([]Filter, len(filters))
	for i, f := range filters {
		v, err := normalizeValue(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = Filter{Field: f.Field, Value: v}
	}
	return out, nil
}

func matchesFilters(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fieldValue(doc, f.Field)
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func fieldValue(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = doc
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// compareValues orders two document field values. Timestamps are stored as
// RFC 3339 strings and compared chronologically; lexicographic comparison
// would misorder values with different sub-second precision.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		if at, err := time.Parse(time.RFC3339Nano, av); err == nil {
			if bt, err := time.Parse(time.RFC3339Nano, bv); err == nil {
				return at.Compare(bt)
			}
		}
		return strings.Compare(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0
		}
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}
