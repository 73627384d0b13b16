// Package order provides the order snapshot consumed by pricing and invoicing.
package order

import (
	"time"

	"pharmakart/internal/core/id"
	"pharmakart/internal/core/types"
)

// Order is a read-only snapshot of a placed order as persisted at checkout.
//
// Snapshots come from more than one upstream writer, so customer-class
// signals and numeric fields are duplicated under several names; pricing
// resolves them with explicit fallback chains rather than trusting any
// single field.
type Order struct {
	ID        id.ID     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// InvoiceRef is either a raw sequence number ("0892") or an already
	// formatted invoice number ("FK/2026/0892").
	InvoiceRef string `json:"invoiceNumber,omitempty"`

	// Customer-class signals, in no guaranteed combination.
	Role     string    `json:"role,omitempty"`
	UserType string    `json:"userType,omitempty"`
	UserInfo *UserInfo `json:"userInfo,omitempty"`

	Cart []CartLine `json:"cart"`

	Coupon *Coupon `json:"coupon,omitempty"`

	ShippingCost types.Amount `json:"shippingCost"`

	// Total is the grand total charged at order creation, when recorded.
	// It is authoritative over any recomputed figure.
	Total types.Amount `json:"totalAmount"`

	// TaxSummary is an optional precomputed order-level tax figure.
	TaxSummary *TaxSummary `json:"taxSummary,omitempty"`
}

// UserInfo is the customer snapshot embedded in the order.
type UserInfo struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Role     string   `json:"role,omitempty"`
	UserType string   `json:"userType,omitempty"`
	User     *UserRef `json:"user,omitempty"`
}

// UserRef is a nested reference to the account record.
type UserRef struct {
	Role string `json:"role,omitempty"`
}

// CartLine is one purchased item.
type CartLine struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`

	// Retail reference prices. MRP is preferred, originalPrice is the
	// older field name still present on historical snapshots.
	MRP           types.Amount `json:"mrp"`
	OriginalPrice types.Amount `json:"originalPrice"`

	// WholesalePrice is the negotiated unit price for wholesale buyers.
	WholesalePrice types.Amount `json:"wholesalePrice"`

	// SellingPrice is the unit price actually charged.
	SellingPrice types.Amount `json:"sellingPrice"`

	// DiscountPercent is a legacy per-line discount used only when no
	// selling price was recorded.
	DiscountPercent types.Amount `json:"discountPercent"`

	// StoredLineTotal was recorded at checkout. It is never trusted:
	// wholesale snapshots have carried it with an incorrect sign, so the
	// line total is always recomputed from unit price and quantity.
	StoredLineTotal types.Amount `json:"lineTotal"`

	// Tax rate, duplicated under three historical field names.
	GSTRate    types.Amount `json:"gstRate"`
	GST        types.Amount `json:"gst"`
	TaxPercent types.Amount `json:"taxPercent"`

	// Passthrough metadata, surfaced on invoices unmodified.
	HSNCode string `json:"hsnCode,omitempty"`
	Batch   string `json:"batch,omitempty"`
	Expiry  string `json:"expiry,omitempty"`
}

// Qty returns the line quantity, never less than 1.
func (l CartLine) Qty() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

// Coupon is an order-level discount resolved upstream.
// The amount is absolute currency; eligibility is not re-validated here.
type Coupon struct {
	Code           string       `json:"code"`
	DiscountAmount types.Amount `json:"discountAmount"`
}

// TaxSummary is the tax figure computed at order creation.
// When ExclusiveTax is positive it is authoritative and per-line tax
// recomputation is bypassed for the whole order.
type TaxSummary struct {
	InclusiveTax types.Amount `json:"inclusiveTax"`
	ExclusiveTax types.Amount `json:"exclusiveTax"`
	Rate         types.Amount `json:"rate"`
}
