package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("199.99")},
	}}

	assert.True(t, decimal.RequireFromString("220.29").Equal(order.ComputeTotal()), order.ComputeTotal().String())
	assert.True(t, decimal.Zero.Equal((&Order{}).ComputeTotal()))
}

func TestBeforeCreateDefaults(t *testing.T) {
	order := &Order{}
	assert.NoError(t, order.BeforeCreate(nil))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, StatusPending, order.Status)

	kept := &Order{ID: "o1", Status: StatusPaid}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "o1", kept.ID)
	assert.Equal(t, StatusPaid, kept.Status)

	user := &User{Email: "  Alice@Example.COM "}
	assert.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
}
