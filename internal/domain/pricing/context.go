package pricing

import (
	"strings"

	"pharmakart/internal/domain/order"
)

// CustomerClass is the pricing regime applying to an entire order.
type CustomerClass int

const (
	// Retail orders price against MRP with per-line discounts and coupons.
	Retail CustomerClass = iota

	// Wholesale orders transact at negotiated prices; no MRP concept,
	// no discounts, no coupons.
	Wholesale
)

// String returns the class name for logs and responses.
func (c CustomerClass) String() string {
	if c == Wholesale {
		return "wholesale"
	}
	return "retail"
}

// roleWholesaler is the literal role value that marks a wholesale buyer.
const roleWholesaler = "wholesaler"

// ResolveCustomerClass derives the customer class from an order snapshot.
//
// Role metadata is duplicated across the snapshot and sometimes missing
// entirely, so signals are consulted in a fixed priority order. The
// final structural fallback inspects the cart itself: a line carrying a
// positive wholesale price only ever appears on wholesale orders. The
// priority order must not change; historical invoices depend on it.
//
// Never fails: an order with no signals at all is a retail order.
func ResolveCustomerClass(o *order.Order) CustomerClass {
	if o == nil {
		return Retail
	}

	for _, signal := range roleSignals(o) {
		if isWholesaler(signal) {
			return Wholesale
		}
	}

	for _, line := range o.Cart {
		if line.WholesalePrice.IsPositive() {
			return Wholesale
		}
	}

	return Retail
}

// roleSignals returns the role fields in resolution priority order.
func roleSignals(o *order.Order) []string {
	signals := make([]string, 0, 5)

	if o.UserInfo != nil {
		signals = append(signals, o.UserInfo.Role)
		if o.UserInfo.User != nil {
			signals = append(signals, o.UserInfo.User.Role)
		}
	}
	signals = append(signals, o.Role)
	if o.UserInfo != nil {
		signals = append(signals, o.UserInfo.UserType)
	}
	signals = append(signals, o.UserType)

	return signals
}

func isWholesaler(signal string) bool {
	return strings.EqualFold(strings.TrimSpace(signal), roleWholesaler)
}
