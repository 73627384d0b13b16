// Package order_repo provides the PostgreSQL implementation of the
// order repository. Order snapshots are stored as jsonb alongside a few
// header columns used for lookups.
package order_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"pharmakart/internal/core/apperror"
	"pharmakart/internal/core/id"
	"pharmakart/internal/domain/order"
	"pharmakart/internal/infrastructure/storage/postgres"
)

const ordersTable = "orders"

// Repo implements order.Repository on PostgreSQL.
type Repo struct {
	txManager *postgres.TxManager
}

// Compile-time check.
var _ order.Repository = (*Repo)(nil)

// New creates an order repository.
func New(txManager *postgres.TxManager) *Repo {
	return &Repo{txManager: txManager}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// orderRow is the persisted shape: header columns plus the snapshot.
type orderRow struct {
	ID         id.ID     `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	InvoiceRef string    `db:"invoice_ref"`
	Snapshot   []byte    `db:"snapshot"`
}

// GetByID returns the order snapshot with all cart lines.
func (r *Repo) GetByID(ctx context.Context, orderID id.ID) (*order.Order, error) {
	q := r.Builder().
		Select("id", "created_at", "invoice_ref", "snapshot").
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row orderRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("order", orderID.String())
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	var o order.Order
	if err := json.Unmarshal(row.Snapshot, &o); err != nil {
		return nil, fmt.Errorf("decode order snapshot %s: %w", orderID, err)
	}

	// Header columns are authoritative over the snapshot copy.
	o.ID = row.ID
	o.CreatedAt = row.CreatedAt
	if row.InvoiceRef != "" {
		o.InvoiceRef = row.InvoiceRef
	}

	return &o, nil
}

// Create persists a new order snapshot.
func (r *Repo) Create(ctx context.Context, o *order.Order) error {
	snapshot, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order snapshot: %w", err)
	}

	q := r.Builder().
		Insert(ordersTable).
		Columns("id", "created_at", "invoice_ref", "snapshot").
		Values(o.ID, o.CreatedAt, o.InvoiceRef, snapshot)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// SetInvoiceRef records the allocated raw invoice sequence.
func (r *Repo) SetInvoiceRef(ctx context.Context, orderID id.ID, ref string) error {
	q := r.Builder().
		Update(ordersTable).
		Set("invoice_ref", ref).
		Where(squirrel.Eq{"id": orderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set invoice ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("order", orderID.String())
	}

	return nil
}
