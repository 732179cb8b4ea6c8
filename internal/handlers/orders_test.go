package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floor-manager-backend/internal/models"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		TableNumber: "T-12",
		Items: []OrderItemRequest{
			{MenuItemID: 1, Quantity: 2, Price: 9.50},
		},
	}
}

func TestValidateCreateOrder_AcceptsValidRequest(t *testing.T) {
	assert.NoError(t, validateCreateOrder(validRequest()))
}

func TestValidateCreateOrder_TableNumberFormat(t *testing.T) {
	tests := []struct {
		name   string
		number string
		wantOK bool
	}{
		{"simple", "5", true},
		{"alnum with hyphen", "T-12", true},
		{"underscore", "patio_3", true},
		{"max length", strings.Repeat("a", 20), true},
		{"empty", "", false},
		{"contains space", "T 12", false},
		{"too long", strings.Repeat("a", 21), false},
		{"special chars", "T#1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.TableNumber = tt.number
			err := validateCreateOrder(req)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateCreateOrder_Items(t *testing.T) {
	req := validRequest()
	req.Items = nil
	assert.Error(t, validateCreateOrder(req), "empty item list")

	req = validRequest()
	req.Items[0].Quantity = 0
	assert.Error(t, validateCreateOrder(req), "quantity below 1")

	req = validRequest()
	req.Items[0].Quantity = 101
	assert.Error(t, validateCreateOrder(req), "quantity above 100")

	req = validRequest()
	req.Items[0].Quantity = 100
	assert.NoError(t, validateCreateOrder(req), "quantity exactly 100")

	req = validRequest()
	req.Items[0].Price = -0.01
	assert.Error(t, validateCreateOrder(req), "negative client price")
}

func TestCheckCatalog(t *testing.T) {
	catalog := map[uint]models.MenuItem{
		1: {ID: 1, Price: 10, Available: true},
		2: {ID: 2, Price: 5, Available: false},
	}

	err := checkCatalog([]OrderItemRequest{{MenuItemID: 1, Quantity: 1}}, catalog)
	assert.NoError(t, err)

	err = checkCatalog([]OrderItemRequest{{MenuItemID: 99, Quantity: 1}}, catalog)
	assert.Error(t, err, "missing item rejects the order")

	err = checkCatalog([]OrderItemRequest{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 2, Quantity: 1},
	}, catalog)
	assert.Error(t, err, "unavailable item rejects the whole order")
}

func TestOrderTotal_IgnoresClientPrice(t *testing.T) {
	catalog := map[uint]models.MenuItem{
		1: {ID: 1, Price: 12.50, Available: true},
		2: {ID: 2, Price: 4.00, Available: true},
	}

	// Client claims everything costs one cent.
	items := []OrderItemRequest{
		{MenuItemID: 1, Quantity: 2, Price: 0.01},
		{MenuItemID: 2, Quantity: 3, Price: 0.01},
	}

	total := orderTotal(items, catalog)
	require.InDelta(t, 2*12.50+3*4.00, total, 0.0001)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "abcde", truncateRunes("abcdefgh", 5))
	// Rune-aware, not byte-aware.
	assert.Equal(t, "héllö", truncateRunes("héllö wörld", 5))
	assert.Equal(t, "", truncateRunes("", 5))
}
