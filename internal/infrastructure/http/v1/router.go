// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"posledger/internal/domain/auth"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/documents"
	"posledger/internal/domain/ledger"
	"posledger/internal/infrastructure/http/v1/handlers"
	"posledger/internal/infrastructure/http/v1/middleware"
	"posledger/pkg/logger"
)

// RouterConfig holds the wired services for the router.
type RouterConfig struct {
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service
	ItemService  *item.Service
	Ledger       *ledger.Service

	// Documents holds one kind-bound service per transaction collection.
	Documents map[documents.Kind]*documents.Service

	// ReadyCheck pings the storage backend; nil means always ready.
	ReadyCheck func(c *gin.Context) error
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.ReadyCheck)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	// Everything below requires a valid token.
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTValidator))

	authed.GET("/auth/me", authHandler.Me)

	// Item catalog
	itemsHandler := handlers.NewItemsHandler(cfg.ItemService)
	items := authed.Group("/items", middleware.RequirePermission("items"))
	{
		items.GET("", itemsHandler.List)
		items.GET("/next-code", itemsHandler.NextCode)
		items.GET("/:id", itemsHandler.Get)
		items.POST("", itemsHandler.Create)
		items.PUT("/:id", itemsHandler.Update)
		items.DELETE("/:id", itemsHandler.Delete)
	}

	// Transaction collections, one group per kind.
	mountDocuments(authed, "/purchases", "stockPurchase", cfg.Documents[documents.KindPurchase])
	mountDocuments(authed, "/stock-returns", "stockReturn", cfg.Documents[documents.KindStockReturn])
	mountDocuments(authed, "/sales", "sale", cfg.Documents[documents.KindSale])
	mountDocuments(authed, "/sale-returns", "saleReturn", cfg.Documents[documents.KindSaleReturn])

	// Derived views
	reportsHandler := handlers.NewReportsHandler(cfg.Ledger)
	reports := authed.Group("", middleware.RequirePermission("closingStock"))
	{
		reports.GET("/reports/closing-stock", reportsHandler.ClosingStock)
		reports.GET("/items/:id/stock", reportsHandler.Stock)
		reports.GET("/items/:id/movements", reportsHandler.Movements)
	}

	// Account management, admin only.
	usersHandler := handlers.NewUsersHandler(cfg.AuthService)
	users := authed.Group("/users", middleware.RequireAdmin())
	{
		users.GET("", usersHandler.List)
		users.GET("/:id", usersHandler.Get)
		users.POST("", usersHandler.Create)
		users.PUT("/:id", usersHandler.Update)
		users.DELETE("/:id", usersHandler.Delete)
	}

	return router
}

func mountDocuments(group *gin.RouterGroup, path, permission string, service *documents.Service) {
	handler := handlers.NewDocumentsHandler(service)
	g := group.Group(path, middleware.RequirePermission(permission))
	{
		g.GET("", handler.List)
		g.GET("/:id", handler.Get)
		g.POST("", handler.Create)
		g.PUT("/:id", handler.Update)
		g.DELETE("/:id", handler.Delete)
	}
}
