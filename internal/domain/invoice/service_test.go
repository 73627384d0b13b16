package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmakart/internal/core/apperror"
	"pharmakart/internal/core/id"
	"pharmakart/internal/core/types"
	"pharmakart/internal/domain/order"
	"pharmakart/internal/domain/pricing"
)

// Fakes

type fakeOrders struct {
	orders map[id.ID]*order.Order
}

func (r *fakeOrders) GetByID(ctx context.Context, orderID id.ID) (*order.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID)
	}
	return o, nil
}

func (r *fakeOrders) Create(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrders) SetInvoiceRef(ctx context.Context, orderID id.ID, ref string) error {
	return nil
}

type fakeRenderer struct {
	out     []byte
	err     error
	calls   int
	lastQR  []byte
	lastDoc *Document
}

func (r *fakeRenderer) Render(doc *Document, qrPNG []byte) ([]byte, error) {
	r.calls++
	r.lastDoc = doc
	r.lastQR = qrPNG
	return r.out, r.err
}

type fakeQR struct {
	out []byte
	err error
}

func (q *fakeQR) Encode(link string) ([]byte, error) {
	return q.out, q.err
}

type fakeArchive struct {
	stored map[id.ID][]byte
	puts   int
	putErr error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{stored: make(map[id.ID][]byte)}
}

func (a *fakeArchive) Get(ctx context.Context, orderID id.ID) ([]byte, error) {
	return a.stored[orderID], nil
}

func (a *fakeArchive) Put(ctx context.Context, orderID id.ID, number string, pdf []byte) error {
	if a.putErr != nil {
		return a.putErr
	}
	a.puts++
	a.stored[orderID] = pdf
	return nil
}

func testOrder() *order.Order {
	return &order.Order{
		ID:         id.MustParse("0195c9a2-7b3e-7cc0-8a51-3f2d4e5a6b7c"),
		CreatedAt:  time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		InvoiceRef: "0892",
		UserInfo:   &order.UserInfo{Name: "Asha Rao", Email: "asha@example.com"},
		Cart: []order.CartLine{
			{Title: "Paracetamol 500mg", Quantity: 2, MRP: types.NewAmount(100), SellingPrice: types.NewAmount(80), GSTRate: types.NewAmount(5)},
		},
	}
}

func newTestService(o *order.Order, r Renderer, q QREncoder, a Archive) *Service {
	orders := &fakeOrders{orders: map[id.ID]*order.Order{}}
	if o != nil {
		orders.orders[o.ID] = o
	}
	return NewService(orders, r, q, a, pricing.DefaultConfig())
}

// Tests

func TestBuild(t *testing.T) {
	o := testOrder()
	svc := newTestService(o, nil, nil, nil)

	doc, err := svc.Build(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Number != "FK/2026/0892" {
		t.Errorf("Number = %q, want FK/2026/0892", doc.Number)
	}
	if doc.DeepLink != "https://api.pharmakart.in/api/v1/orders/"+o.ID.String() {
		t.Errorf("DeepLink = %q", doc.DeepLink)
	}
	if doc.Customer == nil || doc.Customer.Name != "Asha Rao" {
		t.Errorf("Customer = %+v", doc.Customer)
	}
	if len(doc.Rows) == 0 {
		t.Error("expected presentation rows")
	}
	if doc.Breakdown.GrandTotal.StringFixed(2) != "168.00" {
		t.Errorf("GrandTotal = %s, want 168.00", doc.Breakdown.GrandTotal.StringFixed(2))
	}
}

func TestBuild_OrderNotFound(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Build(context.Background(), id.New())
	if !apperror.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestExportPDF_RendersAndArchives(t *testing.T) {
	o := testOrder()
	renderer := &fakeRenderer{out: []byte("%PDF-1.4 fake")}
	archive := newFakeArchive()
	svc := newTestService(o, renderer, &fakeQR{out: []byte("png")}, archive)

	pdf, doc, err := svc.ExportPDF(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pdf) != "%PDF-1.4 fake" {
		t.Errorf("unexpected pdf bytes: %q", pdf)
	}
	if doc == nil || doc.Number != "FK/2026/0892" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if renderer.calls != 1 {
		t.Errorf("renderer called %d times, want 1", renderer.calls)
	}
	if string(renderer.lastQR) != "png" {
		t.Errorf("qr bytes not passed to renderer")
	}
	if archive.puts != 1 {
		t.Errorf("archive puts = %d, want 1", archive.puts)
	}
}

func TestExportPDF_ServesArchivedBytes(t *testing.T) {
	o := testOrder()
	renderer := &fakeRenderer{out: []byte("fresh render")}
	archive := newFakeArchive()
	archive.stored[o.ID] = []byte("archived bytes")
	svc := newTestService(o, renderer, nil, archive)

	pdf, _, err := svc.ExportPDF(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pdf) != "archived bytes" {
		t.Errorf("expected archived bytes, got %q", pdf)
	}
	if renderer.calls != 0 {
		t.Errorf("renderer called %d times, want 0", renderer.calls)
	}
}

func TestExportPDF_QRFailureDoesNotBlock(t *testing.T) {
	o := testOrder()
	renderer := &fakeRenderer{out: []byte("pdf")}
	svc := newTestService(o, renderer, &fakeQR{err: errors.New("encode failed")}, nil)

	pdf, _, err := svc.ExportPDF(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pdf) != "pdf" {
		t.Errorf("unexpected pdf bytes: %q", pdf)
	}
	if renderer.lastQR != nil {
		t.Error("expected nil QR bytes after encoder failure")
	}
}

func TestExportPDF_ArchiveFailureDoesNotBlock(t *testing.T) {
	o := testOrder()
	archive := newFakeArchive()
	archive.putErr = errors.New("table missing")
	svc := newTestService(o, &fakeRenderer{out: []byte("pdf")}, nil, archive)

	pdf, _, err := svc.ExportPDF(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(pdf) != "pdf" {
		t.Errorf("unexpected pdf bytes: %q", pdf)
	}
}

func TestExportPDF_NoRenderer(t *testing.T) {
	o := testOrder()
	svc := newTestService(o, nil, nil, nil)

	if _, _, err := svc.ExportPDF(context.Background(), o.ID); err == nil {
		t.Fatal("expected error without renderer")
	}
}

func TestExportPDF_RenderFailure(t *testing.T) {
	o := testOrder()
	svc := newTestService(o, &fakeRenderer{err: errors.New("font missing")}, nil, nil)

	if _, _, err := svc.ExportPDF(context.Background(), o.ID); err == nil {
		t.Fatal("expected render error")
	}
}
