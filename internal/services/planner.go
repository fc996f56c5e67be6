package services

import (
	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
)

// Pagination describes the page returned by a catalog listing. In the
// store-pushed path Total comes from a baseline-only count query and is
// approximate; in the in-memory path it is exact. Callers must treat the
// pushed-path Total as "at least this many".
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type planKind int

const (
	// planPushBaseline pushes only the baseline filter plus the sort
	planPushBaseline planKind = iota
	// planPushOne pushes the baseline, one extra filter and the sort
	planPushOne
	// planInMemory fetches the baseline-filtered set and applies the
	// extra filters and sort in application code
	planInMemory
)

func (k planKind) String() string {
	switch k {
	case planPushBaseline:
		return "push-baseline"
	case planPushOne:
		return "push-one"
	default:
		return "in-memory"
	}
}

// queryPlan is the strategy chosen for one catalog listing
type queryPlan struct {
	kind   planKind
	pushed docstore.Filter // set when kind == planPushOne
}

// selectPlan chooses the listing strategy from the extra filter set. The
// store serves a single extra equality filter combined with a sort from its
// single-field indexes; two or more would need a composite index, so they
// are applied in memory instead. Pure function, no store access.
func selectPlan(extras []docstore.Filter) queryPlan {
	switch len(extras) {
	case 0:
		return queryPlan{kind: planPushBaseline}
	case 1:
		return queryPlan{kind: planPushOne, pushed: extras[0]}
	default:
		return queryPlan{kind: planInMemory}
	}
}

// normalizePage clamps page and limit to sane bounds
func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// pageWindow computes the slice bounds of one page over n items. The
// past-the-end check divides rather than multiplies so an absurd page
// number cannot overflow the start offset.
func pageWindow(n, page, limit int) (int, int) {
	if page-1 >= (n+limit-1)/limit {
		return n, n
	}
	start := (page - 1) * limit
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

// makePagination builds the pagination block for a known total
func makePagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// CatalogLimits bounds catalog listings. MaxScanSize caps the broad fetch
// performed by the in-memory path so a fallback can never pull an unbounded
// collection into memory.
type CatalogLimits struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxScanSize     int
}

func (l CatalogLimits) withDefaults() CatalogLimits {
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = 10
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = 100
	}
	if l.MaxScanSize <= 0 {
		l.MaxScanSize = 1000
	}
	return l
}

// fetchWindow returns the store fetch size covering pages 1..page, and
// false when that window would exceed the scan bound. Division instead of
// multiplication so a huge page cannot overflow; callers serve over-bound
// pages from the in-memory path, which is always capped at MaxScanSize.
func (l CatalogLimits) fetchWindow(page, limit int) (int, bool) {
	if page > l.MaxScanSize/limit {
		return 0, false
	}
	return page * limit, true
}
