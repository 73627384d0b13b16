package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmakart/internal/core/types"
)

func TestPresent_RetailRowOrder(t *testing.T) {
	b := Breakdown{
		CustomerClass:  Retail,
		ReferenceTotal: types.NewMoney(200),
		DiscountTotal:  types.NewMoney(40),
		TaxTotal:       types.NewMoney(8),
		ShippingCost:   types.NewMoney(1.2),
		GrandTotal:     types.NewMoney(159.2),
	}

	rows := Present(b, DefaultConfig())

	labels := make([]string, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"MRP Total", "Discount", "GST", "Shipping", "Grand Total"}, labels)
}

func TestPresent_CouponRowInsertedAfterDiscount(t *testing.T) {
	b := Breakdown{
		CustomerClass:  Retail,
		ReferenceTotal: types.NewMoney(200),
		DiscountTotal:  types.NewMoney(40),
		CouponCode:     "SAVE10",
		CouponDiscount: types.NewMoney(10),
		TaxTotal:       types.NewMoney(8),
		ShippingCost:   types.NewMoney(1.2),
		GrandTotal:     types.NewMoney(149.2),
	}

	rows := Present(b, DefaultConfig())

	assert.Len(t, rows, 6)
	assert.Equal(t, "Coupon (SAVE10)", rows[2].Label)
	assert.True(t, rows[2].Deduction)
	assert.Equal(t, "- ₹10.00", rows[2].Display)
}

func TestPresent_WholesaleRelabelsAndKeepsDiscountRow(t *testing.T) {
	b := Breakdown{
		CustomerClass:  Wholesale,
		ReferenceTotal: types.NewMoney(160),
		DiscountTotal:  types.Zero(),
		TaxTotal:       types.NewMoney(8),
		ShippingCost:   types.Zero(),
		GrandTotal:     types.NewMoney(168),
	}

	rows := Present(b, DefaultConfig())

	// Same row count as a coupon-less retail order: layout code never
	// branches on customer class.
	assert.Len(t, rows, 5)
	assert.Equal(t, "Total Price", rows[0].Label)
	assert.Equal(t, "Discount", rows[1].Label)
	assert.Equal(t, "- ₹0.00", rows[1].Display)
}

func TestPresent_DisplayFormatting(t *testing.T) {
	b := Breakdown{
		CustomerClass:  Retail,
		ReferenceTotal: types.NewMoney(99.5),
		GrandTotal:     types.NewMoney(99.5),
	}

	rows := Present(b, DefaultConfig())

	assert.Equal(t, "₹99.50", rows[0].Display)

	last := rows[len(rows)-1]
	assert.Equal(t, "Grand Total", last.Label)
	assert.True(t, last.Emphasis)
	assert.False(t, last.Deduction)
}

func TestPresent_CustomCurrencySymbol(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CurrencySymbol = "$"

	b := Breakdown{ReferenceTotal: types.NewMoney(10)}
	rows := Present(b, cfg)

	assert.Equal(t, "$10.00", rows[0].Display)
}

func TestPresent_Idempotent(t *testing.T) {
	b := Breakdown{
		CustomerClass:  Retail,
		ReferenceTotal: types.NewMoney(200),
		DiscountTotal:  types.NewMoney(40),
		CouponCode:     "SAVE10",
		CouponDiscount: types.NewMoney(10),
		GrandTotal:     types.NewMoney(150),
	}

	first := Present(b, DefaultConfig())
	second := Present(b, DefaultConfig())

	assert.Equal(t, first, second)
}
