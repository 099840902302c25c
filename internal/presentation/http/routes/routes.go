package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mahakaal/cafepos/internal/config"
	"github.com/mahakaal/cafepos/internal/presentation/http/handler"
	"github.com/mahakaal/cafepos/internal/presentation/http/middleware"
	"github.com/mahakaal/cafepos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Bill      *handler.BillHandler
	Catalog   *handler.CatalogHandler
	Kitchen   *handler.KitchenHandler
	History   *handler.HistoryHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireStaff())

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerBillRoutes(protected, h)
		registerCatalogRoutes(protected, h)
		registerKitchenRoutes(protected, h)
		registerHistoryRoutes(protected, h)
		registerPrinterRoutes(protected, h)

		protected.GET("/dashboard", h.Dashboard.GetStats)
	}

	return router
}

func registerBillRoutes(g *gin.RouterGroup, h *Handlers) {
	bills := g.Group("/bills")
	{
		bills.POST("", h.Bill.Create)
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/number/:number", h.Bill.GetByNumber)
	}
}

func registerCatalogRoutes(g *gin.RouterGroup, h *Handlers) {
	categories := g.Group("/categories")
	{
		categories.POST("", h.Catalog.CreateCategory)
		categories.GET("", h.Catalog.ListCategories)
		categories.PUT("/:id", h.Catalog.UpdateCategory)
		categories.DELETE("/:id", h.Catalog.DeleteCategory)
	}

	items := g.Group("/items")
	{
		items.POST("", h.Catalog.CreateItem)
		items.GET("", h.Catalog.ListItems)
		items.GET("/:id", h.Catalog.GetItem)
		items.PUT("/:id", h.Catalog.UpdateItem)
		items.PUT("/:id/prices", h.Catalog.SetSizePrice)
		items.DELETE("/:id", h.Catalog.DeleteItem)
	}
}

func registerKitchenRoutes(g *gin.RouterGroup, h *Handlers) {
	g.GET("/stations/:station/recipes", h.Kitchen.StationBoard)

	recipes := g.Group("/recipes")
	{
		recipes.GET("/:id", h.Kitchen.GetRecipe)
		recipes.PATCH("/:id/status", h.Kitchen.UpdateRecipeStatus)
	}

	orders := g.Group("/orders")
	{
		orders.GET("", h.Kitchen.ListOrders)
		orders.GET("/:id", h.Kitchen.GetOrder)
	}
}

func registerHistoryRoutes(g *gin.RouterGroup, h *Handlers) {
	history := g.Group("/history")
	{
		history.GET("", h.History.List)
		history.GET("/:orderId", h.History.GetByOrder)
		history.POST("/:orderId/archive", h.History.Archive)
	}
}

func registerPrinterRoutes(g *gin.RouterGroup, h *Handlers) {
	printers := g.Group("/printer")
	{
		printers.GET("/status", h.Printer.Status)
		printers.POST("/test", h.Printer.TestPrint)
		printers.POST("/bills/:id", h.Printer.ReprintBill)
		printers.POST("/recipes/:id", h.Printer.PrintTicket)
	}
}
