package invoice

import (
	"context"
	"fmt"
	"time"

	"pharmakart/internal/core/id"
	"pharmakart/internal/domain/order"
	"pharmakart/internal/domain/pricing"
	"pharmakart/pkg/logger"
)

// Document is the fully assembled invoice for one order. The on-screen
// view and the PDF export render the same Document; neither recomputes
// any figure.
type Document struct {
	OrderID  string    `json:"orderId"`
	Number   string    `json:"number"`
	IssuedAt time.Time `json:"issuedAt"`
	DeepLink string    `json:"deepLink,omitempty"`

	Customer *order.UserInfo `json:"customer,omitempty"`

	Breakdown pricing.Breakdown `json:"breakdown"`
	Rows      []pricing.Row     `json:"rows"`
}

// Renderer turns a Document into PDF bytes.
// The implementation lives in infrastructure/pdf.
type Renderer interface {
	Render(doc *Document, qrPNG []byte) ([]byte, error)
}

// QREncoder renders the deep link as a scannable image.
// Opaque collaborator; a failure never blocks invoice rendering.
type QREncoder interface {
	Encode(link string) ([]byte, error)
}

// Archive stores rendered PDFs so repeated downloads of the same
// invoice are byte-stable. Implementation lives in storage/postgres.
type Archive interface {
	Get(ctx context.Context, orderID id.ID) ([]byte, error)
	Put(ctx context.Context, orderID id.ID, number string, pdf []byte) error
}

// Service assembles invoices from order snapshots.
type Service struct {
	orders   order.Repository
	renderer Renderer
	qr       QREncoder
	archive  Archive
	cfg      pricing.Config
}

// NewService creates an invoice service. Renderer, QR encoder and
// archive are optional; without them only Build is usable.
func NewService(orders order.Repository, renderer Renderer, qr QREncoder, archive Archive, cfg pricing.Config) *Service {
	return &Service{
		orders:   orders,
		renderer: renderer,
		qr:       qr,
		archive:  archive,
		cfg:      cfg,
	}
}

// Build fetches the order and assembles its invoice document.
func (s *Service) Build(ctx context.Context, orderID id.ID) (*Document, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	b := pricing.ComputeBreakdown(o, s.cfg)

	doc := &Document{
		OrderID:   o.ID.String(),
		Number:    FormatNumber(o.InvoiceRef, o.CreatedAt, s.cfg),
		IssuedAt:  o.CreatedAt,
		DeepLink:  DeepLink(o.ID, s.cfg),
		Customer:  o.UserInfo,
		Breakdown: b,
		Rows:      pricing.Present(b, s.cfg),
	}

	logger.Debug(ctx, "invoice built",
		"order_id", doc.OrderID,
		"number", doc.Number,
		"customer_class", b.CustomerClass.String())

	return doc, nil
}

// ExportPDF returns the rendered invoice PDF, serving archived bytes
// when present so re-downloads never differ.
func (s *Service) ExportPDF(ctx context.Context, orderID id.ID) ([]byte, *Document, error) {
	doc, err := s.Build(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if s.archive != nil {
		if pdf, err := s.archive.Get(ctx, orderID); err == nil && len(pdf) > 0 {
			return pdf, doc, nil
		}
	}

	if s.renderer == nil {
		return nil, nil, fmt.Errorf("pdf renderer not configured")
	}

	// QR rendering is best-effort; the invoice ships without the code
	// if the encoder fails.
	var qrPNG []byte
	if s.qr != nil && doc.DeepLink != "" {
		qrPNG, err = s.qr.Encode(doc.DeepLink)
		if err != nil {
			logger.Warn(ctx, "qr encode failed", "order_id", doc.OrderID, "error", err)
			qrPNG = nil
		}
	}

	pdf, err := s.renderer.Render(doc, qrPNG)
	if err != nil {
		return nil, nil, fmt.Errorf("render invoice pdf: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, orderID, doc.Number, pdf); err != nil {
			logger.Warn(ctx, "archive invoice pdf failed", "order_id", doc.OrderID, "error", err)
		}
	}

	logger.Info(ctx, "invoice pdf rendered",
		"order_id", doc.OrderID,
		"number", doc.Number,
		"bytes", len(pdf))

	return pdf, doc, nil
}
