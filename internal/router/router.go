package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rasoi/internal/ingredient"
	"rasoi/internal/menu"
	"rasoi/internal/metrics"
	"rasoi/internal/middleware"
	"rasoi/internal/order"
	"rasoi/internal/purchase"
	"rasoi/internal/report"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Ingredient *ingredient.Handler
	Menu       *menu.Handler
	Order      *order.Handler
	Purchase   *purchase.Handler
	Report     *report.Handler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ───────────────────────── INGREDIENTS ─────────────────────────
	ingredients := r.Group("/ingredients")
	{
		ingredients.POST("", h.Ingredient.Create)
		ingredients.GET("", h.Ingredient.List)
		ingredients.GET("/:id", h.Ingredient.Get)
		ingredients.PUT("/:id", h.Ingredient.Update)
		ingredients.POST("/:id/adjust", h.Ingredient.Adjust)
		ingredients.GET("/:id/adjustments", h.Ingredient.Adjustments)
	}

	// ───────────────────────── MENU ─────────────────────────
	menus := r.Group("/menu")
	{
		menus.POST("", h.Menu.Create)
		menus.GET("", h.Menu.List)
		menus.GET("/:id", h.Menu.Get)
		menus.PUT("/:id/recipe", h.Menu.UpdateRecipe)
	}

	// ───────────────────────── ORDERS ─────────────────────────
	orders := r.Group("/orders")
	{
		orders.POST("", h.Order.Place)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
	}

	// ───────────────────────── PURCHASE ORDERS ─────────────────────────
	purchases := r.Group("/purchase-orders")
	{
		purchases.POST("", h.Purchase.Create)
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.POST("/:id/cancel", h.Purchase.Cancel)
	}

	suppliers := r.Group("/suppliers")
	{
		suppliers.POST("", h.Purchase.CreateSupplier)
		suppliers.GET("", h.Purchase.ListSuppliers)
	}

	// ───────────────────────── REPORTS ─────────────────────────
	reports := r.Group("/reports")
	{
		reports.GET("/low-stock", h.Report.LowStock)
		reports.GET("/usage", h.Report.Usage)
		reports.GET("/inventory", h.Report.Inventory)
	}

	return r
}
