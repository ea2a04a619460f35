package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bdmart/internal/adapters/http/middleware"
	"bdmart/internal/adapters/http/routes"
	"bdmart/internal/adapters/persistence/models"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/config"
	"bdmart/internal/core/services"
	"bdmart/internal/pkg/cache"
	"bdmart/internal/pkg/metrics"
	"bdmart/internal/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"

	_ "bdmart/docs" // Swagger docs
)

// @title BDMart API
// @version 1.0
// @description BDMart e-commerce backend API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bdmart.com.bd

// @host api.bdmart.com.bd
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name admin_token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Optional Redis cache for the payment-account directory
	var cacheClient *cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient = cache.New(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Printf("⚠️ Redis unavailable, cache disabled: %v", err)
			cacheClient = nil
		} else {
			log.Printf("✅ Redis cache connected [%s]", cfg.Redis.Addr)
			defer cacheClient.Close()
		}
	}

	// Notification broker. Falls back to log-only delivery when the broker is
	// down so registration keeps working.
	var producer rabbitmq.Publisher = &rabbitmq.LogFallback{}
	if cfg.AMQP.URL != "" {
		p, err := rabbitmq.NewEventProducer(cfg.AMQP.URL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, using log fallback: %v", err)
		} else {
			log.Println("✅ RabbitMQ producer connected")
			producer = p
		}
	}
	defer producer.Close()

	// Prometheus metrics on a separate listener
	m := metrics.Registry("bdmart")
	go func() {
		if err := metrics.Serve(":" + cfg.MetricsPort); err != nil {
			log.Printf("⚠️ Metrics server stopped: %v", err)
		}
	}()

	// Start cron service: hourly passcode sweep, daily ledger summary (08:30)
	cronService := services.NewCronService(
		repositories.NewCustomerRepository(db),
		repositories.NewPaymentLedgerRepository(db),
	)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BDMart API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, cacheClient, producer, m)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
