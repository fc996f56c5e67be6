package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iqbalrsyd/reog-commerce/internal/docstore"
)

func TestSelectPlan(t *testing.T) {
	tests := []struct {
		name   string
		extras []docstore.Filter
		want   planKind
	}{
		{"no extras pushes baseline", nil, planPushBaseline},
		{"one extra is pushed", []docstore.Filter{{Field: "category", Value: "Kerajinan"}}, planPushOne},
		{"two extras go in memory", []docstore.Filter{
			{Field: "category", Value: "Kerajinan"},
			{Field: "featured", Value: true},
		}, planInMemory},
		{"three extras go in memory", []docstore.Filter{
			{Field: "category", Value: "Festival"},
			{Field: "status", Value: "upcoming"},
			{Field: "featured", Value: true},
		}, planInMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := selectPlan(tt.extras)
			assert.Equal(t, tt.want, plan.kind)
			if tt.want == planPushOne {
				assert.Equal(t, tt.extras[0], plan.pushed)
			}
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 10, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(3, 25, 10, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	_, limit = normalizePage(1, 500, 10, 100)
	assert.Equal(t, 100, limit)
}

func TestPageWindow(t *testing.T) {
	start, end := pageWindow(25, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = pageWindow(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// A page past the end yields an empty window.
	start, end = pageWindow(25, 4, 10)
	assert.Equal(t, start, end)
}

func TestMakePagination(t *testing.T) {
	p := makePagination(2, 10, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = makePagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
}
