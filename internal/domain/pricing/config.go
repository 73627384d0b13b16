package pricing

import (
	"pharmakart/internal/core/types"
	"pharmakart/internal/domain/order"
)

// Config holds pricing and invoice formatting configuration.
type Config struct {
	// CurrencySymbol prefixes every displayed amount (e.g., "₹").
	CurrencySymbol string

	// DefaultTaxRatePercent is applied when no rate field is present on a
	// cart line. Historical invoices were issued at 12, so the default
	// must not change.
	DefaultTaxRatePercent types.Money

	// InvoicePrefix is the fixed invoice number prefix token (e.g., "FK").
	InvoicePrefix string

	// DeepLinkOrigin is the backend origin used to build scannable
	// order deep links (e.g., "https://api.pharmakart.in").
	DeepLinkOrigin string
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CurrencySymbol:        "₹",
		DefaultTaxRatePercent: types.NewMoney(12),
		InvoicePrefix:         "FK",
		DeepLinkOrigin:        "https://api.pharmakart.in",
	}
}

// --- Field fallback chains ---
//
// Order snapshots carry the same figure under several historical field
// names. Precedence is defined here as ordered lists, in one place,
// rather than inline conditionals scattered across the pipeline.

type lineField func(order.CartLine) types.Amount

// taxRateChain lists the line fields consulted for a tax rate, highest
// precedence first. All absent falls back to Config.DefaultTaxRatePercent.
var taxRateChain = []lineField{
	func(l order.CartLine) types.Amount { return l.GSTRate },
	func(l order.CartLine) types.Amount { return l.GST },
	func(l order.CartLine) types.Amount { return l.TaxPercent },
}

// retailReferenceChain resolves the retail reference price (MRP).
// A line with no recorded MRP is treated as having zero discount.
var retailReferenceChain = []lineField{
	func(l order.CartLine) types.Amount { return l.MRP },
	func(l order.CartLine) types.Amount { return l.OriginalPrice },
	func(l order.CartLine) types.Amount { return l.SellingPrice },
}

// wholesaleReferenceChain resolves the wholesale reference price.
var wholesaleReferenceChain = []lineField{
	func(l order.CartLine) types.Amount { return l.WholesalePrice },
	func(l order.CartLine) types.Amount { return l.SellingPrice },
}

// wholesaleTaxBaseChain resolves the price a wholesale line is taxed on.
var wholesaleTaxBaseChain = []lineField{
	func(l order.CartLine) types.Amount { return l.SellingPrice },
	func(l order.CartLine) types.Amount { return l.WholesalePrice },
}

// firstNonZero returns the first field in the chain that carries a
// non-zero value. Absent and invalid fields decode to zero, so a single
// zero check covers the whole "first non-empty" rule.
func firstNonZero(l order.CartLine, chain []lineField) types.Amount {
	for _, f := range chain {
		if v := f(l); !v.IsZero() {
			return v
		}
	}
	return types.Amount{}
}
