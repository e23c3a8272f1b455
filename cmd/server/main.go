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

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	customerapp "github.com/storefront/backend/internal/application/customer"
	notificationapp "github.com/storefront/backend/internal/application/notification"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/mail"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
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
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, collectionRepo, orderRepo)
	collectionService := catalogapp.NewCollectionService(collectionRepo, productRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	tagService := catalogapp.NewTagService(tagRepo, productRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	customerService := customerapp.NewCustomerService(customerRepo)
	orderService := orderapp.NewOrderService(orderRepo, customerRepo)
	checkoutScope := persistence.NewGormTransactionScope(db.DB)
	checkoutService := checkoutapp.NewCheckoutService(checkoutScope, log)

	// Product read cache (optional)
	if cfg.Cache.Enabled {
		productCache, err := cache.NewRedisProductCache(cfg.Redis, cfg.Cache.TTL, log)
		if err != nil {
			log.Warn("Product cache disabled, redis unreachable", zap.Error(err))
		} else {
			defer func() {
				if err := productCache.Close(); err != nil {
					log.Error("Error closing product cache", zap.Error(err))
				}
			}()
			productService.SetCache(productCache)
			log.Info("Product cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	// JWT validation; tokens are issued by an external identity service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize event bus and the order confirmation handler
	eventBus := event.NewInMemoryEventBus(log)
	mailer := mail.NewLogMailer(log, cfg.Mail.FromAddress)
	orderPlacedHandler := notificationapp.NewOrderPlacedHandler(log, customerRepo, mailer)
	eventBus.Subscribe(orderPlacedHandler, orderPlacedHandler.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	productService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
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

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	tagHandler := handler.NewTagHandler(tagService)
	cartHandler := handler.NewCartHandler(cartService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService, checkoutService)
	systemHandler := handler.NewSystemHandler()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	requireAuth := middleware.RequireAuth(jwtService, log)
	requireStaff := middleware.RequireStaff()

	// Catalog domain. Reads are public, writes are staff-gated.
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/slug/:slug", productHandler.GetBySlug)
	catalogRoutes.POST("/products", requireAuth, requireStaff, productHandler.Create)
	catalogRoutes.PUT("/products/:id", requireAuth, requireStaff, productHandler.Update)
	catalogRoutes.DELETE("/products/:id", requireAuth, requireStaff, productHandler.Delete)

	catalogRoutes.GET("/collections", collectionHandler.List)
	catalogRoutes.GET("/collections/:id", collectionHandler.GetByID)
	catalogRoutes.POST("/collections", requireAuth, requireStaff, collectionHandler.Create)
	catalogRoutes.PUT("/collections/:id", requireAuth, requireStaff, collectionHandler.Update)
	catalogRoutes.DELETE("/collections/:id", requireAuth, requireStaff, collectionHandler.Delete)

	// Reviews nested under products
	catalogRoutes.GET("/products/:id/reviews", reviewHandler.List)
	catalogRoutes.GET("/products/:id/reviews/:review_id", reviewHandler.GetByID)
	catalogRoutes.POST("/products/:id/reviews", reviewHandler.Create)
	catalogRoutes.PUT("/products/:id/reviews/:review_id", reviewHandler.Update)
	catalogRoutes.DELETE("/products/:id/reviews/:review_id", reviewHandler.Delete)

	// Tags
	catalogRoutes.GET("/tags", tagHandler.List)
	catalogRoutes.GET("/products/:id/tags", tagHandler.ListByProduct)
	catalogRoutes.POST("/tags", requireAuth, requireStaff, tagHandler.Create)
	catalogRoutes.PUT("/tags/:id", requireAuth, requireStaff, tagHandler.Update)
	catalogRoutes.DELETE("/tags/:id", requireAuth, requireStaff, tagHandler.Delete)
	catalogRoutes.POST("/tags/:id/products/:product_id", requireAuth, requireStaff, tagHandler.Attach)
	catalogRoutes.DELETE("/tags/:id/products/:product_id", requireAuth, requireStaff, tagHandler.Detach)

	// Cart domain. No auth; the cart ID is the only credential.
	cartRoutes := router.NewDomainGroup("cart", "/carts")
	cartRoutes.POST("", cartHandler.Create)
	cartRoutes.GET("/:id", cartHandler.GetByID)
	cartRoutes.DELETE("/:id", cartHandler.Delete)
	cartRoutes.POST("/:id/items", cartHandler.AddItem)
	cartRoutes.PATCH("/:id/items/:item_id", cartHandler.UpdateItem)
	cartRoutes.DELETE("/:id/items/:item_id", cartHandler.RemoveItem)

	// Customer domain
	customerRoutes := router.NewDomainGroup("customer", "/customers")
	customerRoutes.Use(requireAuth)
	customerRoutes.GET("/me", customerHandler.GetMe)
	customerRoutes.PUT("/me", customerHandler.UpdateMe)
	customerRoutes.GET("", requireStaff, customerHandler.List)
	customerRoutes.GET("/:id", requireStaff, customerHandler.GetByID)
	customerRoutes.PUT("/:id/membership", requireStaff, customerHandler.SetMembership)

	// Order domain (checkout plus order reads)
	orderRoutes := router.NewDomainGroup("order", "/orders")
	orderRoutes.Use(requireAuth)
	orderRoutes.POST("", orderHandler.PlaceOrder)
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.GetMine)

	// Admin order surface, including the payment status transition that the
	// external payment collaborator reports through
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(requireAuth, requireStaff)
	adminRoutes.GET("/orders", orderHandler.ListAll)
	adminRoutes.GET("/orders/:id", orderHandler.GetByID)
	adminRoutes.PUT("/orders/:id/payment-status", orderHandler.SetPaymentStatus)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(cartRoutes).
		Register(customerRoutes).
		Register(orderRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

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

// healthHandler reports service and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
