package router

import (
	"time"

	"retailpos/internal/config"
	"retailpos/internal/handler"
	"retailpos/internal/infra"
	"retailpos/internal/metrics"
	"retailpos/internal/middleware"
	"retailpos/internal/model"
	"retailpos/internal/repository"
	"retailpos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb and m may be nil: the catalog cache and metrics are then disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB+1) << 20

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	if m != nil {
		r.Use(m.Middleware())
	}
	if cfg.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))
	}

	// ── Infrastructure ───────────────────────────────────────────────────────
	uploads := infra.NewUploads(cfg.UploadsDir, cfg.MaxUploadMB)

	// A nil *infra.Mailer must not end up inside the interface.
	var mailer service.ReceiptMailer
	if ml := infra.NewMailer(cfg); ml != nil {
		mailer = ml
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	cache := service.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
	productSvc := service.NewProductService(productRepo, categoryRepo, cache)
	customerSvc := service.NewCustomerService(customerRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, userRepo, customerRepo, m)
	reportSvc := service.NewReportService(saleRepo)
	receiptSvc := service.NewReceiptService(saleRepo, mailer, cfg.StoreName)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc, uploads)
	productsH := handler.NewProductsHandler(productSvc, uploads)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc, reportSvc, receiptSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.Static(infra.PublicUploadsPrefix, uploads.Dir())

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Catalog reads are public so the storefront can render without a login.
	r.GET("/categories", categoriesH.List)
	r.GET("/categories/active", categoriesH.ListActive)
	r.GET("/products", productsH.List)
	r.GET("/products/active", productsH.ListActive)
	r.GET("/products/:id", productsH.Get)

	// Protected routes
	api := r.Group("", middleware.JWTAuth(cfg.JWTSecret))
	{
		categories := api.Group("/categories")
		{
			categories.GET("/:id", categoriesH.Get)
			categories.POST("", categoriesH.Create)
			categories.PATCH("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		products := api.Group("/products", middleware.RequireRole(model.RoleAdmin))
		{
			products.POST("", productsH.Create)
			products.PATCH("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/cleanup/no-images", productsH.CleanupNoImages)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", customersH.List)
			customers.POST("", customersH.Create)
			customers.GET("/:id", customersH.Get)
			customers.PATCH("/:id", customersH.Update)
			customers.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), customersH.Delete)
		}

		users := api.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", usersH.List)
			users.POST("", usersH.CreateCashier)
		}

		sales := api.Group("/sales", middleware.RequireRole(model.RoleAdmin, model.RoleCashier))
		{
			sales.POST("", salesH.Create)
			// Static segments before /:id
			sales.GET("/history", salesH.History)
			sales.GET("/history/export", salesH.ExportHistory)
			sales.GET("/dashboard/today", salesH.Today)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
			sales.POST("/:id/receipt/email", salesH.EmailReceipt)
		}
	}

	// Swagger UI outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
