package pricing

import (
	"fmt"

	"pharmakart/internal/core/types"
)

// Row is one display-ready summary line, shared identically by the
// checkout summary, the on-screen invoice and the PDF export.
type Row struct {
	Label string `json:"label"`

	// Amount is the raw value; Display is the formatted string the
	// surfaces render verbatim.
	Amount  types.Money `json:"amount"`
	Display string      `json:"display"`

	// Deduction marks rows subtracted from the grand total.
	Deduction bool `json:"deduction,omitempty"`

	// Emphasis marks the grand total row.
	Emphasis bool `json:"emphasis,omitempty"`
}

// Summary row labels. The reference row is relabelled for wholesale
// orders, where no MRP concept exists.
const (
	labelMRPTotal   = "MRP Total"
	labelTotalPrice = "Total Price"
	labelDiscount   = "Discount"
	labelGST        = "GST"
	labelShipping   = "Shipping"
	labelGrandTotal = "Grand Total"
)

// Present shapes a breakdown into ordered summary rows.
//
// Row order is fixed: reference, discount, coupon (when applied), tax,
// shipping, grand total. The discount row renders as zero for wholesale
// rather than being omitted, so layout code never branches on class.
// Presenting the same order twice yields identical rows.
func Present(b Breakdown, cfg Config) []Row {
	refLabel := labelMRPTotal
	if b.CustomerClass == Wholesale {
		refLabel = labelTotalPrice
	}

	rows := make([]Row, 0, 6)
	rows = append(rows, row(refLabel, b.ReferenceTotal, cfg, false, false))
	rows = append(rows, row(labelDiscount, b.DiscountTotal, cfg, true, false))

	if b.CouponCode != "" || b.CouponDiscount.IsPositive() {
		label := "Coupon"
		if b.CouponCode != "" {
			label = fmt.Sprintf("Coupon (%s)", b.CouponCode)
		}
		rows = append(rows, row(label, b.CouponDiscount, cfg, true, false))
	}

	rows = append(rows, row(labelGST, b.TaxTotal, cfg, false, false))
	rows = append(rows, row(labelShipping, b.ShippingCost, cfg, false, false))
	rows = append(rows, row(labelGrandTotal, b.GrandTotal, cfg, false, true))

	return rows
}

func row(label string, amount types.Money, cfg Config, deduction, emphasis bool) Row {
	display := cfg.CurrencySymbol + amount.StringFixed(2)
	if deduction {
		display = "- " + display
	}
	return Row{
		Label:     label,
		Amount:    amount,
		Display:   display,
		Deduction: deduction,
		Emphasis:  emphasis,
	}
}
