// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"pharmakart/internal/domain/invoice"
	"pharmakart/internal/domain/order"
	"pharmakart/internal/domain/pricing"
	"pharmakart/internal/infrastructure/http/v1/handlers"
	"pharmakart/internal/infrastructure/http/v1/middleware"
	"pharmakart/internal/infrastructure/storage/postgres"
	"pharmakart/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// Idempotency guards order intake against duplicate submissions.
	// Optional; nil disables the X-Idempotency-Key protocol.
	Idempotency *postgres.IdempotencyStore

	// OrderService for order intake and lookups.
	OrderService *order.Service

	// InvoiceService for invoice rendering.
	InvoiceService *invoice.Service

	// Pricing carries currency, tax default and invoice formatting options.
	Pricing pricing.Config
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	orderHandler := handlers.NewOrderHandler(cfg.OrderService, cfg.Pricing)
	invoiceHandler := handlers.NewInvoiceHandler(cfg.InvoiceService)

	api := router.Group("/api/v1")
	{
		// Checkout preview is available to guests; pricing an unsaved
		// cart leaks nothing.
		api.POST("/orders/preview", middleware.OptionalAuth(cfg.JWTValidator), orderHandler.Preview)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		{
			if cfg.Idempotency != nil {
				protected.POST("/orders", middleware.Idempotency(cfg.Idempotency), orderHandler.Create)
			} else {
				protected.POST("/orders", orderHandler.Create)
			}
			protected.GET("/orders/:id", orderHandler.Get)
			protected.GET("/orders/:id/summary", orderHandler.Summary)
			protected.GET("/orders/:id/invoice", invoiceHandler.Get)
			protected.GET("/orders/:id/invoice/pdf", invoiceHandler.Download)
		}
	}

	return router
}
