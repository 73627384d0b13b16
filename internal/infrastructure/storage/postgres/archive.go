// Package postgres provides PostgreSQL infrastructure components.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/klauspost/compress/zstd"

	"pharmakart/internal/core/id"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// InvoiceArchive stores rendered invoice PDFs so repeated downloads of
// the same invoice return byte-identical documents. PDFs above the
// threshold are zstd-compressed at rest.
type InvoiceArchive struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes, default 10KB
}

// NewInvoiceArchive creates an invoice archive.
func NewInvoiceArchive(txManager *TxManager) (*InvoiceArchive, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &InvoiceArchive{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Put stores the rendered PDF for an order. Re-archiving the same order
// replaces the previous document.
func (a *InvoiceArchive) Put(ctx context.Context, orderID id.ID, number string, pdf []byte) error {
	algo := CompressionNone
	stored := pdf
	if len(pdf) > a.compressThreshold {
		stored = a.encoder.EncodeAll(pdf, nil)
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_invoice_archive (order_id, invoice_number, pdf, compression_algo, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO UPDATE
		SET invoice_number = $2, pdf = $3, compression_algo = $4, created_at = $5
	`

	querier := a.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql, orderID, number, stored, algo, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive invoice %s: %w", orderID, err)
	}

	return nil
}

// Get returns the archived PDF for an order, or nil when none exists.
func (a *InvoiceArchive) Get(ctx context.Context, orderID id.ID) ([]byte, error) {
	var stored []byte
	var algo CompressionAlgo

	querier := a.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, `
		SELECT pdf, compression_algo FROM sys_invoice_archive WHERE order_id = $1
	`, orderID).Scan(&stored, &algo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archived invoice %s: %w", orderID, err)
	}

	if algo == CompressionZstd {
		pdf, err := a.decoder.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress archived invoice %s: %w", orderID, err)
		}
		return pdf, nil
	}

	return stored, nil
}
