package pricing

import (
	"github.com/shopspring/decimal"

	"pharmakart/internal/core/types"
	"pharmakart/internal/domain/order"
)

// LineValue is the resolved monetary tuple for a single cart line.
// Unit fields (ReferencePrice, SellingPrice, Discount) are per unit;
// TaxAmount and LineTotal cover the whole line (unit x quantity).
type LineValue struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`

	ReferencePrice types.Money `json:"referencePrice"`
	SellingPrice   types.Money `json:"sellingPrice"`
	Discount       types.Money `json:"discount"`
	TaxRate        types.Money `json:"taxRate"`
	TaxAmount      types.Money `json:"taxAmount"`
	LineTotal      types.Money `json:"lineTotal"`

	HSNCode string `json:"hsnCode,omitempty"`
	Batch   string `json:"batch,omitempty"`
	Expiry  string `json:"expiry,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// ValueLine resolves prices, discount and tax for one cart line under
// the given customer class.
//
// All surfaced figures are clamped non-negative via absolute value as
// the final step. Intermediate subtraction (discount) may go negative
// on inconsistent snapshots and is corrected before surfacing.
func ValueLine(l order.CartLine, class CustomerClass, cfg Config) LineValue {
	qty := decimal.NewFromInt(int64(l.Qty()))

	rate := firstNonZero(l, taxRateChain).Decimal()
	if rate.IsZero() {
		rate = cfg.DefaultTaxRatePercent
	}

	var ref, discount, taxBase types.Money

	switch class {
	case Wholesale:
		// Negotiated price; no MRP concept applies, discount is zero by
		// definition. Wholesale snapshots have been observed to carry
		// negative prices, hence the clamp on the reference itself.
		ref = firstNonZero(l, wholesaleReferenceChain).Abs()
		discount = decimal.Zero
		taxBase = firstNonZero(l, wholesaleTaxBaseChain).Abs()

	default:
		ref = firstNonZero(l, retailReferenceChain).Decimal()
		switch {
		case l.SellingPrice.IsPositive():
			discount = ref.Sub(l.SellingPrice.Decimal())
		case !l.DiscountPercent.IsZero():
			discount = ref.Mul(l.DiscountPercent.Decimal()).Div(hundred)
		default:
			discount = decimal.Zero
		}
		if !l.SellingPrice.IsZero() {
			taxBase = l.SellingPrice.Abs()
		} else {
			taxBase = ref.Sub(discount).Abs()
		}
	}

	// The line total is always freshly computed from the tax base; any
	// total stored on the line is ignored (see CartLine.StoredLineTotal).
	tax := taxBase.Mul(qty).Mul(rate).Div(hundred).Abs()
	total := taxBase.Mul(qty).Abs().Add(tax)

	return LineValue{
		Title:          l.Title,
		Quantity:       l.Qty(),
		ReferencePrice: ref.Abs(),
		SellingPrice:   taxBase,
		Discount:       discount.Abs(),
		TaxRate:        rate,
		TaxAmount:      tax,
		LineTotal:      total,
		HSNCode:        l.HSNCode,
		Batch:          l.Batch,
		Expiry:         l.Expiry,
	}
}

// ValueLines resolves every cart line of an order.
func ValueLines(o *order.Order, class CustomerClass, cfg Config) []LineValue {
	if o == nil {
		return nil
	}
	values := make([]LineValue, 0, len(o.Cart))
	for _, line := range o.Cart {
		values = append(values, ValueLine(line, class, cfg))
	}
	return values
}
