package routes

import (
	"bdmart/internal/adapters/http/handlers"
	"bdmart/internal/adapters/http/middleware"
	"bdmart/internal/adapters/persistence/repositories"
	"bdmart/internal/config"
	"bdmart/internal/core/services"
	"bdmart/internal/pkg/cache"
	"bdmart/internal/pkg/metrics"
	"bdmart/internal/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(
	app *fiber.App,
	db *gorm.DB,
	cfg *config.Config,
	cacheClient *cache.Client,
	producer rabbitmq.Publisher,
	m *metrics.Metrics,
) {
	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	ledgerRepo := repositories.NewPaymentLedgerRepository(db)
	accountRepo := repositories.NewPaymentAccountRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(producer, cfg.AMQP.Exchange)
	adminAuthService := services.NewAdminAuthService(adminRepo, cfg)
	customerAuthService := services.NewCustomerAuthService(customerRepo, notifyService, m, cfg)
	paymentService := services.NewPaymentService(ledgerRepo, m)
	accountService := services.NewPaymentAccountService(accountRepo, cacheClient, cfg.Redis.TTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(adminAuthService, cfg)
	adminHandler := handlers.NewAdminHandler(adminAuthService)
	customerHandler := handlers.NewCustomerAuthHandler(customerAuthService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	accountHandler := handlers.NewPaymentAccountHandler(accountService)

	// Access guard: every request is classified public/customer/admin by path
	// before any handler runs.
	app.Use(middleware.Guard(cfg))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Admin auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", authHandler.Me)

	// Customer routes
	customerRoutes := apiV1.Group("/customer")
	customerRoutes.Post("/register", middleware.StrictRateLimiter(), customerHandler.Register)
	customerRoutes.Post("/verify", middleware.StrictRateLimiter(), customerHandler.Verify)
	customerRoutes.Post("/login", middleware.AuthRateLimiter(), customerHandler.Login)
	customerRoutes.Post("/password/forgot", middleware.StrictRateLimiter(), customerHandler.ForgotPassword)
	customerRoutes.Post("/password/reset", middleware.StrictRateLimiter(), customerHandler.ResetPassword)
	customerRoutes.Get("/me", customerHandler.Me)

	// Checkout payment verification. Public, but a bearer token is honored so
	// logged-in customers get stamped onto the ledger entry.
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Post("/verify", middleware.OptionalCustomerAuth(cfg), paymentHandler.VerifyPayment)

	// Payment account directory for the checkout page
	apiV1.Get("/payment-accounts", accountHandler.ListAccounts)

	// Admin routes (cookie + admin role, enforced by the guard)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Put("/profile", adminHandler.UpdateProfile)
	adminRoutes.Put("/password", adminHandler.ChangePassword)
	adminRoutes.Get("/users", adminHandler.ListAdmins)
	adminRoutes.Put("/users/:id/status", adminHandler.SetStatus)
	adminRoutes.Get("/payments", paymentHandler.ListLedger)
	adminRoutes.Put("/payment-accounts/:provider", accountHandler.SetAccount)
}
