// Package pdf renders invoice documents as PDF files.
//
// The renderer draws exactly what the invoice document carries: the
// per-line values and the presenter's summary rows are printed verbatim,
// never recomputed, so the PDF can not drift from the on-screen invoice.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"pharmakart/internal/domain/invoice"
	"pharmakart/internal/domain/pricing"
)

// Renderer renders invoice documents with gofpdf.
type Renderer struct {
	cfg pricing.Config
}

// Compile-time check.
var _ invoice.Renderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer.
func NewRenderer(cfg pricing.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render produces the invoice PDF. qrPNG is optional; when present it is
// placed in the footer as the scannable order link.
func (r *Renderer) Render(doc *invoice.Document, qrPNG []byte) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetAutoPageBreak(true, 20)
	p.AddPage()

	// Header
	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(0, 10, "Tax Invoice", "", 1, "C", false, 0, "")
	p.Ln(2)

	p.SetFont("Helvetica", "", 10)
	p.CellFormat(95, 6, tr("Invoice No: "+doc.Number), "", 0, "L", false, 0, "")
	issued := ""
	if !doc.IssuedAt.IsZero() {
		issued = doc.IssuedAt.Format("02 Jan 2006")
	}
	p.CellFormat(95, 6, tr("Date: "+issued), "", 1, "R", false, 0, "")

	if doc.Customer != nil {
		if doc.Customer.Name != "" {
			p.CellFormat(0, 6, tr("Billed To: "+doc.Customer.Name), "", 1, "L", false, 0, "")
		}
		if doc.Customer.Phone != "" {
			p.CellFormat(0, 6, tr("Phone: "+doc.Customer.Phone), "", 1, "L", false, 0, "")
		}
	}
	p.Ln(4)

	r.renderLineTable(p, tr, doc)
	p.Ln(4)
	r.renderSummary(p, tr, doc.Rows)

	if len(qrPNG) > 0 {
		r.renderQR(p, qrPNG)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var lineColumns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 52, "L"},
	{"HSN", 18, "L"},
	{"Batch", 18, "L"},
	{"Qty", 12, "R"},
	{"Price", 22, "R"},
	{"Disc", 20, "R"},
	{"GST", 22, "R"},
	{"Total", 26, "R"},
}

func (r *Renderer) renderLineTable(p *gofpdf.Fpdf, tr func(string) string, doc *invoice.Document) {
	p.SetFont("Helvetica", "B", 9)
	p.SetFillColor(235, 235, 235)
	for _, col := range lineColumns {
		p.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	p.Ln(-1)

	p.SetFont("Helvetica", "", 9)
	for _, v := range doc.Breakdown.Lines {
		cells := []string{
			v.Title,
			v.HSNCode,
			v.Batch,
			fmt.Sprintf("%d", v.Quantity),
			v.SellingPrice.StringFixed(2),
			v.Discount.StringFixed(2),
			v.TaxAmount.StringFixed(2),
			v.LineTotal.StringFixed(2),
		}
		for i, col := range lineColumns {
			p.CellFormat(col.width, 6, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		p.Ln(-1)
	}
}

func (r *Renderer) renderSummary(p *gofpdf.Fpdf, tr func(string) string, rows []pricing.Row) {
	const labelW, valueW = 140, 50

	for _, row := range rows {
		if row.Emphasis {
			p.SetFont("Helvetica", "B", 11)
		} else {
			p.SetFont("Helvetica", "", 10)
		}
		p.CellFormat(labelW, 7, tr(row.Label), "", 0, "R", false, 0, "")
		p.CellFormat(valueW, 7, tr(row.Display), "", 1, "R", false, 0, "")
	}
}

func (r *Renderer) renderQR(p *gofpdf.Fpdf, qrPNG []byte) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("order-qr", opts, bytes.NewReader(qrPNG))
	p.Ln(6)
	p.ImageOptions("order-qr", 12, p.GetY(), 28, 28, false, opts, 0, "")
	p.SetY(p.GetY() + 30)
	p.SetFont("Helvetica", "", 8)
	p.CellFormat(0, 5, "Scan to view this order", "", 1, "L", false, 0, "")
}
