package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ezm-trade/trade-api/internal/application/analytics"
	"github.com/ezm-trade/trade-api/internal/application/auth"
	"github.com/ezm-trade/trade-api/internal/application/catalog"
	"github.com/ezm-trade/trade-api/internal/application/notifications"
	"github.com/ezm-trade/trade-api/internal/application/orders"
	"github.com/ezm-trade/trade-api/internal/application/payments"
	"github.com/ezm-trade/trade-api/internal/application/reports"
	"github.com/ezm-trade/trade-api/internal/application/requests"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *catalog.ProductUseCase
	StoreUC       *catalog.StoreUseCase
	WarehouseUC   *catalog.WarehouseUseCase
	SupplierUC    *catalog.SupplierUseCase
	DropdownUC    *catalog.DropdownUseCase
	RestockUC     *requests.RestockUseCase
	TransferUC    *requests.TransferUseCase
	OrderUC       *orders.UseCase
	PaymentUC     *payments.UseCase
	Notifications *notifications.Service
	StockAlerts   *notifications.StockAlertService
	DashboardUC   *analytics.DashboardUseCase
	ReportsUC     *reports.UseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Chapa webhook (public; authenticated by HMAC signature, not JWT)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.All("/payments/webhook", paymentHandler.Webhook)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	managers := RequireRole(entity.RoleAdmin, entity.RoleHeadManager)
	storeStaff := RequireRole(entity.RoleAdmin, entity.RoleHeadManager, entity.RoleStoreManager, entity.RoleCashier)

	// Products and categories
	productHandler := NewProductHandler(deps.ProductUC)
	productGroup := protected.Group("/products")
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Post("/", managers, productHandler.Create)
	productGroup.Put("/:id", managers, productHandler.Update)
	productGroup.Delete("/:id", managers, productHandler.Delete)
	protected.Get("/categories", productHandler.ListCategories)
	protected.Post("/categories", managers, productHandler.CreateCategory)

	// Stores and stock
	storeHandler := NewStoreHandler(deps.StoreUC)
	storeGroup := protected.Group("/stores")
	storeGroup.Get("/", storeHandler.List)
	storeGroup.Get("/:id", storeHandler.GetByID)
	storeGroup.Post("/", managers, storeHandler.Create)
	storeGroup.Put("/:id", managers, storeHandler.Update)
	storeGroup.Delete("/:id", managers, storeHandler.Delete)
	storeGroup.Get("/:id/stock", storeHandler.ListStock)
	storeGroup.Put("/:id/stock/:productId/pricing",
		RequireRole(entity.RoleAdmin, entity.RoleHeadManager, entity.RoleStoreManager),
		storeHandler.UpdateStockPricing)
	storeGroup.Post("/:id/sales", storeStaff, storeHandler.RecordSale)

	// Central warehouse
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouseGroup := protected.Group("/warehouse", managers)
	warehouseGroup.Get("/", warehouseHandler.List)
	warehouseGroup.Get("/reorder", warehouseHandler.ListBelowReorderPoint)
	warehouseGroup.Get("/:productId", warehouseHandler.GetByProduct)
	warehouseGroup.Put("/:productId", warehouseHandler.Upsert)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	supplierGroup := protected.Group("/suppliers")
	supplierGroup.Get("/", supplierHandler.List)
	supplierGroup.Get("/:id", supplierHandler.GetByID)
	supplierGroup.Post("/", managers, supplierHandler.Create)
	supplierGroup.Get("/:id/products", supplierHandler.ListProducts)
	supplierGroup.Post("/:id/products",
		RequireRole(entity.RoleAdmin, entity.RoleHeadManager, entity.RoleSupplier),
		supplierHandler.AddProduct)
	supplierGroup.Put("/products/:id/quantity",
		RequireRole(entity.RoleAdmin, entity.RoleHeadManager, entity.RoleSupplier),
		supplierHandler.UpdateProductQuantity)

	// Restock requests (store -> warehouse)
	restockHandler := NewRestockHandler(deps.RestockUC)
	restockGroup := protected.Group("/restock-requests")
	restockGroup.Post("/", RequireRole(entity.RoleStoreManager), restockHandler.Create)
	restockGroup.Get("/", restockHandler.List)
	restockGroup.Get("/:id", restockHandler.GetByID)
	restockGroup.Post("/:id/approve", managers, restockHandler.Approve)
	restockGroup.Post("/:id/reject", managers, restockHandler.Reject)
	restockGroup.Post("/:id/ship", managers, restockHandler.Ship)
	restockGroup.Post("/:id/receive",
		RequireRole(entity.RoleStoreManager, entity.RoleCashier),
		restockHandler.Receive)

	// Transfer requests (store -> store)
	transferHandler := NewTransferHandler(deps.TransferUC)
	transferGroup := protected.Group("/transfer-requests")
	transferGroup.Post("/", RequireRole(entity.RoleStoreManager), transferHandler.Create)
	transferGroup.Get("/", transferHandler.List)
	transferGroup.Get("/:id", transferHandler.GetByID)
	transferGroup.Post("/:id/approve", managers, transferHandler.Approve)
	transferGroup.Post("/:id/decline", managers, transferHandler.Decline)

	// Form dropdowns
	dropdownHandler := NewDropdownHandler(deps.DropdownUC)
	protected.Get("/dropdowns/restock-products", dropdownHandler.RestockOptions)
	protected.Get("/dropdowns/transfer-products", dropdownHandler.TransferOptions)
	protected.Get("/dropdowns/warehouse-products", managers, dropdownHandler.WarehouseOptions)

	// Purchase orders
	orderHandler := NewOrderHandler(deps.OrderUC)
	orderGroup := protected.Group("/purchase-orders", managers)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Post("/:id/in-transit", orderHandler.MarkInTransit)
	orderGroup.Post("/:id/deliver", orderHandler.ConfirmDelivery)
	orderGroup.Post("/:id/cancel", orderHandler.Cancel)

	// Payments (initialize + history; webhook is public above)
	paymentGroup := protected.Group("/payments")
	paymentGroup.Post("/initialize", storeStaff, paymentHandler.Initialize)
	paymentGroup.Get("/", managers, paymentHandler.List)
	paymentGroup.Get("/:txRef", managers, paymentHandler.GetByTxRef)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.Notifications)
	notifGroup := protected.Group("/notifications")
	notifGroup.Get("/", notificationHandler.List)
	notifGroup.Get("/unread-count", notificationHandler.UnreadCount)
	notifGroup.Post("/read-all", notificationHandler.MarkAllRead)
	notifGroup.Post("/:id/read", notificationHandler.MarkRead)

	// Analytics and reports
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ReportsUC, deps.StockAlerts)
	protected.Get("/analytics/dashboard", managers, analyticsHandler.Dashboard)
	protected.Get("/reports/financial.pdf", managers, analyticsHandler.FinancialReportPDF)
	protected.Get("/reports/sales.csv", managers, analyticsHandler.SalesCSV)
	protected.Post("/stock-alerts/scan", managers, analyticsHandler.ScanStockAlerts)
}
