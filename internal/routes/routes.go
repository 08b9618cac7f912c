// Package routes defines the API routing configuration. It wires the
// repositories, services and handlers together and registers every route.
package routes

import (
	"mesa/internal/handlers"
	"mesa/internal/repositories"
	"mesa/internal/services/funding"
	"mesa/internal/services/notification"
	"mesa/internal/services/order"
	"mesa/internal/services/transaction"
	"mesa/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	store := repositories.NewStore(db)
	walletRepo := repositories.NewWalletRepository(db)

	walletService := wallet.NewService(
		walletRepo,
		repositories.CacheService,
		&wallet.PrometheusMetricsCollector{},
	)
	processor := transaction.NewProcessor(store, walletService)
	transactionService := transaction.NewService(store, processor)
	notifier := notification.NewService(repositories.CacheService)
	orderService := order.NewService(store, walletService, processor, notifier)
	cardProcessor := funding.NewService()

	walletHandler := handlers.NewWalletHandler(walletService, transactionService, cardProcessor)
	orderHandler := handlers.NewOrderHandler(orderService)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	wallets := api.Group("/wallets")
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/:id", walletHandler.GetWallet)
	wallets.Get("/:id/transactions", walletHandler.GetHistory)
	wallets.Post("/:id/deposit", walletHandler.Deposit)
	wallets.Post("/:id/withdraw", walletHandler.Withdraw)

	api.Get("/transactions/:reference", walletHandler.GetTransaction)

	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/tip", orderHandler.TipDriver)
	orders.Post("/:id/refund", orderHandler.RefundOrder)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	})
}
