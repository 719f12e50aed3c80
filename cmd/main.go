package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storeadmin/internal/analytics"
	"storeadmin/internal/caching"
	"storeadmin/internal/common"
	"storeadmin/internal/handlers"
	"storeadmin/internal/jobs/background"
	"storeadmin/internal/middleware"
	"storeadmin/internal/repositories"
	"storeadmin/internal/services"
	"storeadmin/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Auth configuration: either an identity provider's JWKS endpoint or
	// an HMAC secret for development
	jwksURL := os.Getenv("IDP_JWKS_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwksURL == "" && jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Payment gateway configuration
	paymobSecretKey := os.Getenv("PAYMOB_SECRET_KEY")
	paymobPublicKey := os.Getenv("PAYMOB_PUBLIC_KEY")
	if paymobSecretKey == "" || paymobPublicKey == "" {
		log.Printf("WARNING: Payment gateway keys not configured, checkout will fail")
	}
	backendURL := os.Getenv("BACKEND_STORE_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}
	frontendURL := os.Getenv("FRONTEND_STORE_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	// Storage
	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Repositories
	storeRepo := repositories.NewStoreRepo(pool)
	billboardRepo := repositories.NewBillboardRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	sizeRepo := repositories.NewSizeRepo(pool)
	colorRepo := repositories.NewColorRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Cache
	cacheStore := caching.NewRedisStore(redisAddr, redisPassword, redisDB)
	cacheSvc := caching.NewCacheService(cacheStore)
	optimistic := caching.NewOptimistic(cacheStore)

	// Services
	ownershipSvc := services.NewOwnershipService(storeRepo)
	paymentSvc := services.NewPaymentService(paymobSecretKey, paymobPublicKey)
	checkoutSvc := services.NewCheckoutService(orderRepo, paymentSvc, backendURL, frontendURL)
	analyticsSvc := analytics.NewService(orderRepo, productRepo, cacheSvc)

	// Handlers
	storeHandlers := handlers.NewStoreHandlers(storeRepo)
	billboardHandlers := handlers.NewBillboardHandlers(billboardRepo, ownershipSvc, cacheSvc, optimistic)
	categoryHandlers := handlers.NewCategoryHandlers(categoryRepo, billboardRepo, ownershipSvc, cacheSvc, optimistic)
	sizeHandlers := handlers.NewSizeHandlers(sizeRepo, ownershipSvc, cacheSvc, optimistic)
	colorHandlers := handlers.NewColorHandlers(colorRepo, ownershipSvc, cacheSvc, optimistic)
	productHandlers := handlers.NewProductHandlers(productRepo, ownershipSvc, cacheSvc, optimistic)
	orderHandlers := handlers.NewOrderHandlers(orderRepo, ownershipSvc)
	checkoutHandlers := handlers.NewCheckoutHandlers(checkoutSvc)
	webhookHandlers := handlers.NewWebhookHandlers(orderRepo)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc, ownershipSvc)
	uploadHandlers := handlers.NewUploadHandlers(storageSvc, ownershipSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	// Auth middleware
	authMW, err := middleware.RequireAuth(middleware.AuthConfig{
		Secret:  jwtSecret,
		JWKSURL: jwksURL,
	})
	if err != nil {
		log.Fatalf("Failed to configure auth middleware: %v", err)
	}

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc, storeRepo, orderRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = common.HTTPErrorHandler

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Store routes (all require auth)
	stores := api.Group("/stores", authMW, middleware.RequireSubject)
	stores.POST("", storeHandlers.CreateStore)
	stores.GET("", storeHandlers.ListStores)
	stores.GET("/:storeId", storeHandlers.GetStore)
	stores.PATCH("/:storeId", storeHandlers.UpdateStore)
	stores.DELETE("/:storeId", storeHandlers.DeleteStore)

	// Storefront reads are public; admin mutations require auth plus the
	// ownership gate inside each handler.
	auth := []echo.MiddlewareFunc{authMW, middleware.RequireSubject}

	api.GET("/stores/:storeId/billboards", billboardHandlers.ListBillboards)
	api.GET("/stores/:storeId/billboards/:billboardId", billboardHandlers.GetBillboard)
	api.POST("/stores/:storeId/billboards", billboardHandlers.CreateBillboard, auth...)
	api.PATCH("/stores/:storeId/billboards/:billboardId", billboardHandlers.UpdateBillboard, auth...)
	api.DELETE("/stores/:storeId/billboards/:billboardId", billboardHandlers.DeleteBillboard, auth...)

	api.GET("/stores/:storeId/categories", categoryHandlers.ListCategories)
	api.GET("/stores/:storeId/categories/:categoryId", categoryHandlers.GetCategory)
	api.POST("/stores/:storeId/categories", categoryHandlers.CreateCategory, auth...)
	api.PATCH("/stores/:storeId/categories/:categoryId", categoryHandlers.UpdateCategory, auth...)
	api.DELETE("/stores/:storeId/categories/:categoryId", categoryHandlers.DeleteCategory, auth...)

	api.GET("/stores/:storeId/sizes", sizeHandlers.ListSizes)
	api.GET("/stores/:storeId/sizes/:sizeId", sizeHandlers.GetSize)
	api.POST("/stores/:storeId/sizes", sizeHandlers.CreateSize, auth...)
	api.PATCH("/stores/:storeId/sizes/:sizeId", sizeHandlers.UpdateSize, auth...)
	api.DELETE("/stores/:storeId/sizes/:sizeId", sizeHandlers.DeleteSize, auth...)

	api.GET("/stores/:storeId/colors", colorHandlers.ListColors)
	api.GET("/stores/:storeId/colors/:colorId", colorHandlers.GetColor)
	api.POST("/stores/:storeId/colors", colorHandlers.CreateColor, auth...)
	api.PATCH("/stores/:storeId/colors/:colorId", colorHandlers.UpdateColor, auth...)
	api.DELETE("/stores/:storeId/colors/:colorId", colorHandlers.DeleteColor, auth...)

	api.GET("/stores/:storeId/products", productHandlers.ListProducts)
	api.GET("/stores/:storeId/products/:productId", productHandlers.GetProduct)
	api.POST("/stores/:storeId/products", productHandlers.CreateProduct, auth...)
	api.PATCH("/stores/:storeId/products/:productId", productHandlers.UpdateProduct, auth...)
	api.DELETE("/stores/:storeId/products/:productId", productHandlers.DeleteProduct, auth...)

	// Orders are admin-only reads
	api.GET("/stores/:storeId/orders", orderHandlers.ListOrders, auth...)
	api.GET("/stores/:storeId/orders/:orderId", orderHandlers.GetOrder, auth...)

	// Checkout and the payment webhook are called by shoppers and the
	// gateway, not admin users
	api.POST("/stores/:storeId/checkout", checkoutHandlers.Checkout)
	api.POST("/stores/:storeId/webhook", webhookHandlers.PaymentWebhook)

	// Dashboard and uploads
	api.GET("/stores/:storeId/dashboard", dashboardHandlers.GetDashboard, auth...)
	api.POST("/stores/:storeId/uploads", uploadHandlers.UploadImage, auth...)
	api.DELETE("/stores/:storeId/uploads/:key", uploadHandlers.DeleteImage, auth...)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("storeadmin server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
