// Package invoice builds the human-facing invoice artifacts for an order:
// the display invoice number, the scannable deep link, and the rendered
// document consumed by the on-screen view and the PDF export.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"pharmakart/internal/core/id"
	"pharmakart/internal/domain/pricing"
)

// placeholderNumber is rendered when an order carries no invoice
// reference at all.
const placeholderNumber = "-"

// deepLinkPath is the fixed path segment of the scannable order link.
const deepLinkPath = "/api/v1/orders/"

// FormatNumber derives the display invoice number from the raw
// reference stored on the order.
//
// Formatting is idempotent: a reference already carrying the prefix
// token ("FK/") is returned unchanged, so re-rendering an invoice never
// re-wraps its number. Otherwise the number is composed as
// PREFIX/YEAR/raw, with the year taken from the order creation time
// (or the current time when the order has no timestamp).
func FormatNumber(raw string, createdAt time.Time, cfg pricing.Config) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return placeholderNumber
	}

	token := cfg.InvoicePrefix + "/"
	if strings.HasPrefix(raw, token) {
		return raw
	}

	year := createdAt.Year()
	if createdAt.IsZero() {
		year = time.Now().Year()
	}

	return fmt.Sprintf("%s/%d/%s", cfg.InvoicePrefix, year, raw)
}

// DeepLink composes the scannable order URL handed to the QR renderer.
// Derived from the same order record as the invoice number so the two
// artifacts never drift apart on re-render. A missing order identifier
// yields an empty link; pricing proceeds unaffected.
func DeepLink(orderID id.ID, cfg pricing.Config) string {
	if id.IsNil(orderID) {
		return ""
	}
	return strings.TrimRight(cfg.DeepLinkOrigin, "/") + deepLinkPath + orderID.String()
}
