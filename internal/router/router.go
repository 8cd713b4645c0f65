package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/config"
	"github.com/Strife-cyber/agro/internal/handler"
	"github.com/Strife-cyber/agro/internal/infra"
	"github.com/Strife-cyber/agro/internal/middleware"
	"github.com/Strife-cyber/agro/internal/repository"
	"github.com/Strife-cyber/agro/internal/service"
	"github.com/Strife-cyber/agro/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	stockRepo := repository.NewStockRepository(db)
	approRepo := repository.NewApprovisionnementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	auditRepo := repository.NewTransactionLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo, warehouseRepo)
	approSvc := service.NewApprovisionnementService(
		approRepo, stockRepo, paymentRepo, productRepo, warehouseRepo, userRepo, auditRepo, dispatcher)
	orderSvc := service.NewOrderService(
		orderRepo, stockRepo, deliveryRepo, paymentRepo, userRepo, auditRepo, dispatcher)
	stockSvc := service.NewStockService(stockRepo, auditRepo, dispatcher, cfg.LowStockThreshold)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	approH := handler.NewApprovisionnementsHandler(approSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	stocksH := handler.NewStocksHandler(stockSvc)
	notificationsH := handler.NewNotificationsHandler(notificationRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — role checks live in the services via the authz
	// capability table, so routes only require a valid token.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		appro := v1.Group("/approvisionnements")
		{
			appro.POST("", approH.Create)
			appro.GET("", approH.List)
			appro.GET("/:id", approH.Get)
			appro.POST("/:id/validate", approH.ValidateBD)
			appro.POST("/:id/reject", approH.RejectBD)
			appro.POST("/:id/receive", approH.ReceiveStock)
			appro.POST("/:id/reject-stock", approH.RejectStock)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", ordersH.Process)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
		}

		stocks := v1.Group("/stocks")
		{
			stocks.POST("/adjust", stocksH.Adjust)
			stocks.POST("/transfer", stocksH.Transfer)
			stocks.GET("/report", stocksH.Report)
			stocks.POST("/alert", stocksH.Alert)
		}

		v1.GET("/notifications", notificationsH.List)

		v1.POST("/products", catalogH.CreateProduct)
		v1.GET("/products", catalogH.ListProducts)
		v1.POST("/warehouses", catalogH.CreateWarehouse)
		v1.GET("/warehouses", catalogH.ListWarehouses)

		users := v1.Group("/users")
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
