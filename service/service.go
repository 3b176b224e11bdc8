package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/auth"
	"github.com/valubaby/valu-store/internal/catalog"
	"github.com/valubaby/valu-store/internal/checkout"
	"github.com/valubaby/valu-store/internal/email"
	"github.com/valubaby/valu-store/internal/handlers"
	"github.com/valubaby/valu-store/internal/jobs"
	"github.com/valubaby/valu-store/storage"
)

type Service struct {
	storage      *storage.Storage
	config       *Config
	emailService *email.Service
	dispatcher   *jobs.NotificationDispatcher
	gate         *auth.AdminGate

	productsHandler *handlers.ProductsHandler
	cartHandler     *handlers.CartHandler
	ordersHandler   *handlers.OrdersHandler
	paymentHandler  *handlers.PaymentHandler
	adminHandler    *handlers.AdminHandler
}

func New(storage *storage.Storage, config *Config) *Service {
	emailService := email.NewService(config.EmailConfig())
	if !emailService.Configured() {
		slog.Warn("email is not configured; order notifications will be skipped")
	}

	dispatcher := jobs.NewNotificationDispatcher(emailService, config.DispatcherConfig())
	gate := auth.NewAdminGate(config.Admin.Password)
	orders := checkout.NewOrderService(storage, dispatcher)

	return &Service{
		storage:         storage,
		config:          config,
		emailService:    emailService,
		dispatcher:      dispatcher,
		gate:            gate,
		productsHandler: handlers.NewProductsHandler(catalog.NewService(storage)),
		cartHandler:     handlers.NewCartHandler(checkout.NewValidator(storage.Queries)),
		ordersHandler:   handlers.NewOrdersHandler(orders),
		paymentHandler:  handlers.NewPaymentHandler(orders, config.PaymentConfig()),
		adminHandler: handlers.NewAdminHandler(gate, storage, dispatcher, handlers.RuntimeInfo{
			Environment: config.Environment,
			DBPath:      config.DBPath,
			Port:        config.Port,
		}),
	}
}

// Start launches the notification workers.
func (s *Service) Start(ctx context.Context) {
	s.dispatcher.Start(ctx)
}

// Shutdown drains queued notifications.
func (s *Service) Shutdown() {
	s.dispatcher.Stop()
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = HTTPErrorHandler(s.config.IsDevelopment())

	// Health check - no auth
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	admin := s.gate.RequireAdmin()

	// Catalog
	products := api.Group("/products")
	products.GET("", s.productsHandler.ListProducts)
	products.GET("/:id", s.productsHandler.GetProduct)
	products.POST("", s.productsHandler.CreateProduct, admin)
	products.PUT("/:id", s.productsHandler.UpdateProduct, admin)
	products.DELETE("/:id", s.productsHandler.DeleteProduct, admin)

	// Cart
	api.POST("/cart/validate", s.cartHandler.ValidateCart)

	// Orders
	orders := api.Group("/orders")
	orders.POST("", s.ordersHandler.CreateOrder)
	orders.GET("", s.ordersHandler.ListOrders, admin)
	orders.GET("/stats", s.ordersHandler.GetStats, admin)
	orders.GET("/number/:orderNumber", s.ordersHandler.GetOrderByNumber)
	orders.GET("/:id", s.ordersHandler.GetOrder)
	orders.PUT("/:id/status", s.ordersHandler.UpdateStatus, admin)
	orders.PUT("/:id/payment", s.ordersHandler.UpdatePayment, admin)

	// Manual payment instructions
	orders.GET("/:id/payment-instructions", s.paymentHandler.GetInstructions)
	orders.GET("/:id/payment-card.png", s.paymentHandler.GetCard)
	orders.GET("/:id/receipt.pdf", s.paymentHandler.GetReceipt)

	// Admin
	api.POST("/admin/login", s.adminHandler.HandleLogin)
	api.GET("/admin/verify", s.adminHandler.HandleVerify)
	api.GET("/admin/system", s.adminHandler.HandleSystem, admin)
}

func (s *Service) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := s.storage.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.config.Environment,
	})
}
