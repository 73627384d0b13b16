// Package main is the entry point for the Pharmakart pricing API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pharmakart/internal/domain/auth"
	"pharmakart/internal/domain/invoice"
	"pharmakart/internal/domain/order"
	"pharmakart/internal/domain/pricing"
	v1 "pharmakart/internal/infrastructure/http/v1"
	"pharmakart/internal/infrastructure/pdf"
	"pharmakart/internal/infrastructure/qr"
	"pharmakart/internal/infrastructure/storage/postgres"
	"pharmakart/internal/infrastructure/storage/postgres/order_repo"
	"pharmakart/pkg/logger"
	"pharmakart/pkg/numerator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting pharmakart server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	if idleTime := getEnvDuration("DB_MAX_CONN_IDLE_TIME", 0); idleTime > 0 {
		poolCfg.MaxConnIdleTime = idleTime
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Pricing configuration ---
	pricingCfg := pricing.DefaultConfig()
	if symbol := os.Getenv("CURRENCY_SYMBOL"); symbol != "" {
		pricingCfg.CurrencySymbol = symbol
	}
	if origin := os.Getenv("DEEP_LINK_ORIGIN"); origin != "" {
		pricingCfg.DeepLinkOrigin = origin
	}

	// --- JWT Service ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Services ---
	sequencer := numerator.New(pool)
	orderRepo := order_repo.New(txManager)
	orderService := order.NewService(orderRepo, sequencer, txManager)

	archive, err := postgres.NewInvoiceArchive(txManager)
	if err != nil {
		log.Fatalw("failed to initialize invoice archive", "error", err)
	}

	var idempotencyStore *postgres.IdempotencyStore
	if getEnv("IDEMPOTENCY_ENABLED", "true") == "true" {
		ttl := getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour)
		idempotencyStore = postgres.NewIdempotencyStore(txManager, ttl)
	}

	renderer := pdf.NewRenderer(pricingCfg)
	qrEncoder := qr.NewEncoder(getEnvInt("QR_SIZE_PX", 256))
	invoiceService := invoice.NewService(orderRepo, renderer, qrEncoder, archive, pricingCfg)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		JWTValidator:   jwtService,
		Idempotency:    idempotencyStore,
		OrderService:   orderService,
		InvoiceService: invoiceService,
		Pricing:        pricingCfg,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
