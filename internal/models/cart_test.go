package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartProductLineUnitPrice(t *testing.T) {
	line := CartProductLine{Price: PriceRange{Min: 1000, Max: 2000}}
	assert.Equal(t, 1000, line.UnitPrice())

	line.SelectedPrice = 1500
	assert.Equal(t, 1500, line.UnitPrice())
}

func TestCartRecompute(t *testing.T) {
	cart := NewCart("u1")
	cart.Products = []CartProductLine{
		{ProductID: "p1", Quantity: 2, Price: PriceRange{Min: 1000}},
		{ProductID: "p2", Quantity: 1, Price: PriceRange{Min: 500}, SelectedPrice: 700},
	}
	cart.Events = []CartTicketLine{
		{ID: TicketLineID("e1", "VIP"), Quantity: 3, Price: 150000},
	}

	cart.Recompute()

	assert.Equal(t, 6, cart.TotalItems)
	assert.Equal(t, 2*1000+700+3*150000, cart.TotalAmount)
}

func TestTicketCategoryAvailable(t *testing.T) {
	tc := TicketCategory{Quota: 10, Sold: 7}
	assert.Equal(t, 3, tc.Available())
	assert.False(t, tc.IsSoldOut())

	tc.Sold = 10
	assert.Equal(t, 0, tc.Available())
	assert.True(t, tc.IsSoldOut())

	// Oversold never goes negative.
	tc.Sold = 12
	assert.Equal(t, 0, tc.Available())
}
