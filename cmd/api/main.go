package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/ezm-trade/trade-api/internal/application/analytics"
	"github.com/ezm-trade/trade-api/internal/application/auth"
	"github.com/ezm-trade/trade-api/internal/application/catalog"
	"github.com/ezm-trade/trade-api/internal/application/notifications"
	"github.com/ezm-trade/trade-api/internal/application/orders"
	"github.com/ezm-trade/trade-api/internal/application/payments"
	"github.com/ezm-trade/trade-api/internal/application/reports"
	"github.com/ezm-trade/trade-api/internal/application/requests"
	infrachapa "github.com/ezm-trade/trade-api/internal/infrastructure/chapa"
	inframail "github.com/ezm-trade/trade-api/internal/infrastructure/mail"
	infrapdf "github.com/ezm-trade/trade-api/internal/infrastructure/pdf"
	"github.com/ezm-trade/trade-api/internal/infrastructure/postgres"
	infraredis "github.com/ezm-trade/trade-api/internal/infrastructure/redis"
	httpRouter "github.com/ezm-trade/trade-api/internal/interfaces/http"
	"github.com/ezm-trade/trade-api/pkg/config"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Optional Redis cache; the app runs without it.
	var (
		countCache notifications.CountCache = notifications.NopCache{}
		bytesCache catalog.BytesCache       = catalog.NopBytesCache{}
	)
	if cfg.Redis.Addr != "" {
		cache, err := infraredis.New(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer cache.Close()
		countCache = cache
		bytesCache = cache
	}

	// Optional SMTP; notification emails are skipped without it.
	var mailer notifications.Mailer
	if cfg.SMTP.Host != "" {
		mailer = inframail.NewSMTPMailer(cfg.SMTP)
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	warehouseRepo := postgres.NewWarehouseProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	restockRepo := postgres.NewRestockRequestRepository(pool)
	transferRepo := postgres.NewTransferRequestRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	orderTxRunner := postgres.NewOrderTxRunner(pool)

	notifSvc := notifications.NewService(notifRepo, userRepo, mailer, countCache, log)
	stockAlerts := notifications.NewStockAlertService(supplierRepo, userRepo, notifSvc, mailer, log)

	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo)
	storeUC := catalog.NewStoreUseCase(storeRepo, stockRepo, productRepo, stockAlerts)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo, productRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	dropdownUC := catalog.NewDropdownUseCase(warehouseRepo, stockRepo, productRepo, bytesCache, log)

	restockUC := requests.NewRestockUseCase(txRunner, restockRepo, productRepo, storeRepo, notifSvc)
	transferUC := requests.NewTransferUseCase(txRunner, transferRepo, productRepo, storeRepo, notifSvc)
	orderUC := orders.NewUseCase(orderTxRunner, orderRepo, supplierRepo, productRepo, notifSvc)

	chapaClient := infrachapa.NewClient(cfg.Chapa)
	paymentUC := payments.NewUseCase(paymentRepo, chapaClient, notifSvc, log)

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportsUC := reports.NewUseCase(dashboardUC, analyticsRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EZM Trade API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		StoreUC:       storeUC,
		WarehouseUC:   warehouseUC,
		SupplierUC:    supplierUC,
		DropdownUC:    dropdownUC,
		RestockUC:     restockUC,
		TransferUC:    transferUC,
		OrderUC:       orderUC,
		PaymentUC:     paymentUC,
		Notifications: notifSvc,
		StockAlerts:   stockAlerts,
		DashboardUC:   dashboardUC,
		ReportsUC:     reportsUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
