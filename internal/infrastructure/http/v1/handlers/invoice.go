package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pharmakart/internal/domain/invoice"
)

// InvoiceHandler serves the on-screen invoice and the PDF export.
// Both render from the same invoice document; totals are computed once.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Get returns the invoice document for the on-screen view.
// GET /api/v1/orders/:id/invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.Build(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Download returns the invoice as a PDF attachment.
// GET /api/v1/orders/:id/invoice/pdf
func (h *InvoiceHandler) Download(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	pdf, doc, err := h.service.ExportPDF(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", safeFilename(doc.Number))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// safeFilename replaces path separators in invoice numbers ("FK/2026/0892").
func safeFilename(number string) string {
	return strings.ReplaceAll(number, "/", "-")
}
