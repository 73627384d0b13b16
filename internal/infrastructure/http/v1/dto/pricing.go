package dto

import (
	"pharmakart/internal/domain/pricing"
)

// SummaryResponse is the checkout order-summary payload.
// Rows come straight from the breakdown presenter; the storefront
// renders them verbatim and never recomputes totals.
type SummaryResponse struct {
	OrderID       string            `json:"orderId"`
	CustomerClass string            `json:"customerClass"`
	Rows          []pricing.Row     `json:"rows"`
	Breakdown     pricing.Breakdown `json:"breakdown"`
}

// NewSummaryResponse shapes a breakdown for the checkout summary panel.
func NewSummaryResponse(orderID string, b pricing.Breakdown, rows []pricing.Row) SummaryResponse {
	return SummaryResponse{
		OrderID:       orderID,
		CustomerClass: b.CustomerClass.String(),
		Rows:          rows,
		Breakdown:     b,
	}
}
