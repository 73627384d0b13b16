package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmakart/internal/domain/order"
	"pharmakart/internal/domain/pricing"
	"pharmakart/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles order intake and the checkout summary.
type OrderHandler struct {
	*BaseHandler
	service *order.Service
	cfg     pricing.Config
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(service *order.Service, cfg pricing.Config) *OrderHandler {
	return &OrderHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		cfg:         cfg,
	}
}

// Create handles order creation.
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var o order.Order
	if !h.BindJSON(c, &o) {
		return
	}

	if err := h.service.Create(c.Request.Context(), &o); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, o.ID.String())
}

// Get returns the raw order snapshot.
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// Summary returns the checkout order-summary rows for an order.
// GET /api/v1/orders/:id/summary
func (h *OrderHandler) Summary(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	b := pricing.ComputeBreakdown(o, h.cfg)
	rows := pricing.Present(b, h.cfg)

	h.OK(c, dto.NewSummaryResponse(o.ID.String(), b, rows))
}

// Preview prices an unsaved order payload for the checkout page.
// POST /api/v1/orders/preview
func (h *OrderHandler) Preview(c *gin.Context) {
	var o order.Order
	if !h.BindJSON(c, &o) {
		return
	}

	b := pricing.ComputeBreakdown(&o, h.cfg)
	rows := pricing.Present(b, h.cfg)

	h.OK(c, dto.NewSummaryResponse(o.ID.String(), b, rows))
}
