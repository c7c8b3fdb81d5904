package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/expense/model"
)

func TestTotals(t *testing.T) {
	total, byCategory := model.Totals([]model.Expense{
		{Category: "utilities", Amount: decimal.RequireFromString("10.10")},
		{Category: "utilities", Amount: decimal.RequireFromString("0.20")},
		{Category: "food-beverage", Amount: decimal.RequireFromString("5")},
	})

	assert.True(t, decimal.RequireFromString("15.30").Equal(total))
	assert.True(t, decimal.RequireFromString("10.30").Equal(byCategory["utilities"]))
	assert.True(t, decimal.NewFromInt(5).Equal(byCategory["food-beverage"]))

	total, byCategory = model.Totals(nil)
	assert.True(t, total.IsZero())
	assert.Empty(t, byCategory)
}
