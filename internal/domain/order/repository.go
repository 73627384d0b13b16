package order

import (
	"context"

	"pharmakart/internal/core/id"
)

// Repository defines persistence operations for order snapshots.
// The implementation lives in infrastructure/storage/postgres.
type Repository interface {
	// GetByID returns the order snapshot with all cart lines.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// Create persists a new order snapshot.
	Create(ctx context.Context, o *Order) error

	// SetInvoiceRef records the allocated raw invoice sequence.
	SetInvoiceRef(ctx context.Context, orderID id.ID, ref string) error
}
