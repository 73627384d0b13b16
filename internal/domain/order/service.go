package order

import (
	"context"
	"fmt"
	"time"

	"pharmakart/internal/core/apperror"
	"pharmakart/internal/core/id"
	"pharmakart/internal/core/tx"
	"pharmakart/pkg/logger"
)

// Sequencer allocates raw invoice sequence references ("0892") at order
// creation. Display formatting happens later in the invoice package.
type Sequencer interface {
	Next(ctx context.Context, series string, period time.Time) (string, error)
}

// Service provides order intake operations.
type Service struct {
	repo      Repository
	sequencer Sequencer
	txManager tx.Manager
}

// NewService creates an order service.
func NewService(repo Repository, sequencer Sequencer, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		sequencer: sequencer,
		txManager: txManager,
	}
}

// Validate checks the minimum shape required to persist a snapshot.
// Pricing itself tolerates missing numerics; intake only rejects orders
// that could never be invoiced at all.
func (o *Order) Validate(ctx context.Context) error {
	if len(o.Cart) == 0 {
		return apperror.NewValidation("at least one cart line is required").
			WithDetail("field", "cart")
	}
	for i, line := range o.Cart {
		if line.Title == "" {
			return apperror.NewValidation("cart line title is required").
				WithDetail("field", "cart").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < 1 {
			return apperror.NewValidation("quantity must be at least 1").
				WithDetail("field", "cart").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

// Create persists a new order snapshot and allocates its raw invoice
// sequence reference.
func (s *Service) Create(ctx context.Context, o *Order) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.ID) {
		o.ID = id.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	// Sequence allocation runs outside the business transaction; a gap
	// on rollback is acceptable, a duplicate reference is not.
	if o.InvoiceRef == "" && s.sequencer != nil {
		ref, err := s.sequencer.Next(ctx, "invoice", o.CreatedAt)
		if err != nil {
			return fmt.Errorf("allocate invoice reference: %w", err)
		}
		o.InvoiceRef = ref
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "order created",
		"id", o.ID,
		"invoice_ref", o.InvoiceRef,
		"lines", len(o.Cart))

	return nil
}

// GetByID retrieves an order snapshot.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}
