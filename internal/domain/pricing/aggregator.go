// Package pricing derives the monetary breakdown of an order.
//
// The engine is a pure single-pass pipeline: resolve the customer class,
// value each cart line, aggregate into order totals, shape presentation
// rows. Every rendering surface (checkout summary, invoice view, PDF
// export) consumes the same Breakdown and never recomputes figures.
//
// The engine never fails. Missing or invalid numeric input is treated
// as zero and every surfaced field is non-negative; a best-effort
// breakdown always beats blocking an invoice render.
package pricing

import (
	"pharmakart/internal/core/types"
	"pharmakart/internal/domain/order"
)

// Breakdown is the canonical order-level pricing output.
// It is constructed fresh per request, never persisted or mutated.
type Breakdown struct {
	CustomerClass CustomerClass `json:"customerClass"`

	// ReferenceTotal is the MRP total for retail orders and the plain
	// price total for wholesale orders (no MRP concept applies there).
	ReferenceTotal types.Money `json:"referenceTotal"`

	DiscountTotal  types.Money `json:"discountTotal"`
	CouponCode     string      `json:"couponCode,omitempty"`
	CouponDiscount types.Money `json:"couponDiscount"`
	TaxTotal       types.Money `json:"taxTotal"`
	ShippingCost   types.Money `json:"shippingCost"`
	GrandTotal     types.Money `json:"grandTotal"`

	Lines []LineValue `json:"lines"`
}

// Aggregate sums per-line values into the order-level breakdown.
func Aggregate(o *order.Order, class CustomerClass, values []LineValue) Breakdown {
	b := Breakdown{
		CustomerClass: class,
		Lines:         values,
	}

	refTotal := types.Zero()
	discountTotal := types.Zero()
	lineTax := types.Zero()

	for _, v := range values {
		qty := types.NewMoney(float64(v.Quantity))
		if class == Wholesale {
			refTotal = refTotal.Add(v.SellingPrice.Mul(qty))
		} else {
			refTotal = refTotal.Add(v.ReferencePrice.Mul(qty))
			discountTotal = discountTotal.Add(v.Discount.Mul(qty))
		}
		lineTax = lineTax.Add(v.TaxAmount)
	}

	b.ReferenceTotal = refTotal
	if class == Retail {
		b.DiscountTotal = discountTotal
	} else {
		b.DiscountTotal = types.Zero()
	}

	// A positive precomputed exclusive tax is authoritative for the
	// whole order; the per-line sum and the stored figure are never
	// blended. The stored figure can legitimately disagree with the
	// line-level rates and must be reproduced as-is on every surface.
	if o != nil && o.TaxSummary != nil && o.TaxSummary.ExclusiveTax.IsPositive() {
		b.TaxTotal = o.TaxSummary.ExclusiveTax.Decimal()
	} else {
		b.TaxTotal = lineTax
	}

	// Coupons never apply to wholesale orders.
	if class == Retail && o != nil && o.Coupon != nil {
		b.CouponCode = o.Coupon.Code
		b.CouponDiscount = o.Coupon.DiscountAmount.Abs()
	} else {
		b.CouponDiscount = types.Zero()
	}

	if o != nil {
		b.ShippingCost = o.ShippingCost.Abs()
	} else {
		b.ShippingCost = types.Zero()
	}

	// The total stored at order creation is what was actually charged
	// and wins over any recomputation; the local figure is only a
	// fallback for orders that never recorded one.
	if o != nil && !o.Total.IsZero() {
		b.GrandTotal = o.Total.Abs()
	} else {
		b.GrandTotal = b.ReferenceTotal.
			Sub(b.DiscountTotal).
			Sub(b.CouponDiscount).
			Add(b.TaxTotal).
			Add(b.ShippingCost)
	}

	return b.rounded()
}

// rounded clamps every field non-negative and rounds to currency
// precision (2 decimal places).
func (b Breakdown) rounded() Breakdown {
	b.ReferenceTotal = types.Round2(types.NonNeg(b.ReferenceTotal))
	b.DiscountTotal = types.Round2(types.NonNeg(b.DiscountTotal))
	b.CouponDiscount = types.Round2(types.NonNeg(b.CouponDiscount))
	b.TaxTotal = types.Round2(types.NonNeg(b.TaxTotal))
	b.ShippingCost = types.Round2(types.NonNeg(b.ShippingCost))
	b.GrandTotal = types.Round2(types.NonNeg(b.GrandTotal))

	for i := range b.Lines {
		v := &b.Lines[i]
		v.ReferencePrice = types.Round2(types.NonNeg(v.ReferencePrice))
		v.SellingPrice = types.Round2(types.NonNeg(v.SellingPrice))
		v.Discount = types.Round2(types.NonNeg(v.Discount))
		v.TaxAmount = types.Round2(types.NonNeg(v.TaxAmount))
		v.LineTotal = types.Round2(types.NonNeg(v.LineTotal))
	}

	return b
}

// ComputeBreakdown is the single logical entry point of the engine:
// given an already-fetched order snapshot, compute its breakdown
// synchronously. Safe for concurrent use; no shared state.
func ComputeBreakdown(o *order.Order, cfg Config) Breakdown {
	class := ResolveCustomerClass(o)
	values := ValueLines(o, class, cfg)
	return Aggregate(o, class, values)
}
