package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/smartbill/backend/internal/application/billing"
	catalogapp "github.com/smartbill/backend/internal/application/catalog"
	procurementapp "github.com/smartbill/backend/internal/application/procurement"
	reportapp "github.com/smartbill/backend/internal/application/report"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/auth"
	"github.com/smartbill/backend/internal/infrastructure/config"
	"github.com/smartbill/backend/internal/infrastructure/event"
	"github.com/smartbill/backend/internal/infrastructure/logger"
	"github.com/smartbill/backend/internal/infrastructure/notify"
	"github.com/smartbill/backend/internal/infrastructure/persistence"
	"github.com/smartbill/backend/internal/interfaces/http/handler"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
	"github.com/smartbill/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SmartBill backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus with the change notifier subscribed. Dashboard clients get a
	// "collection changed" nudge over Redis pub/sub and refetch.
	eventBus := event.NewInMemoryEventBus(log)

	var notifier shared.ChangeNotifier = shared.NoOpNotifier{}
	var redisNotifier *notify.RedisNotifier
	switch cfg.Notifier.Backend {
	case "redis":
		redisNotifier, err = notify.NewRedisNotifier(cfg.Redis, cfg.Notifier.ChannelPrefix, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		notifier = redisNotifier
		log.Info("Redis change notifier enabled",
			zap.String("addr", cfg.Redis.Addr()),
			zap.String("channel_prefix", cfg.Notifier.ChannelPrefix),
		)
	default:
		log.Info("Change notifications disabled")
	}
	defer func() {
		if redisNotifier != nil {
			if err := redisNotifier.Close(); err != nil {
				log.Error("Error closing Redis notifier", zap.Error(err))
			}
		}
	}()

	changeHandler := notify.NewChangeHandler(notifier, log)
	eventBus.Subscribe(changeHandler, changeHandler.EventTypes()...)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, eventBus, log)
	settlementService := billingapp.NewSettlementService(
		productRepo, invoiceRepo, txScope, eventBus, billing.TaxMode(cfg.Billing.TaxMode), log,
	)
	purchaseService := procurementapp.NewPurchaseService(productRepo, purchaseRepo, txScope, eventBus, log)
	aggregationService := reportapp.NewAggregationService(productRepo, invoiceRepo)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	billingHandler := handler.NewBillingHandler(settlementService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	reportHandler := handler.NewReportHandler(aggregationService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning, no auth)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// All API routes expect a bearer token carrying the actor identity
	identityConfig := middleware.DefaultIdentityConfig(jwtService)
	identityConfig.Logger = log
	engine.Use(middleware.IdentityWithConfig(identityConfig))

	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// Catalog domain
	catalogRoutes := router.NewDomainGroup("/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/low-stock", productHandler.ListLowStock)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", adminOnly, productHandler.Delete)

	// Billing domain
	billingRoutes := router.NewDomainGroup("/billing")
	billingRoutes.POST("/quote", billingHandler.Quote)
	billingRoutes.POST("/invoices", billingHandler.Settle)
	billingRoutes.GET("/invoices", billingHandler.List)
	billingRoutes.GET("/invoices/number/:number", billingHandler.GetByNumber)
	billingRoutes.GET("/invoices/:id", billingHandler.GetByID)

	// Procurement domain
	purchaseRoutes := router.NewDomainGroup("/purchases")
	purchaseRoutes.POST("", adminOnly, purchaseHandler.Record)
	purchaseRoutes.GET("", purchaseHandler.List)
	purchaseRoutes.GET("/:id", purchaseHandler.GetByID)

	// Reports
	reportRoutes := router.NewDomainGroup("/reports")
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/low-stock", reportHandler.LowStock)
	reportRoutes.GET("/top-selling", reportHandler.TopSelling)
	reportRoutes.GET("/sales", reportHandler.Sales)

	r.Register(catalogRoutes).
		Register(billingRoutes).
		Register(purchaseRoutes).
		Register(reportRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
