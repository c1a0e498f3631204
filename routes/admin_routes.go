package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dkadris/dkadris_backend/controllers"
	"github.com/dkadris/dkadris_backend/middleware"
	ws "github.com/dkadris/dkadris_backend/websocket"
)

// RegisterAdminRoutes sets up the back-office routes
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController, productController *controllers.ProductController, orderController *controllers.OrderController, hub *ws.Hub) {
	e.POST("/api/admin/login", adminController.Login)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	// Affiliates tab
	admin.GET("/affiliates", adminController.ListAffiliates)

	// Products tab
	admin.GET("/products", productController.ListAllProducts)
	admin.POST("/products", productController.CreateProduct)
	admin.PUT("/products/:id", productController.UpdateProduct)
	admin.PATCH("/products/:id/whitelist", productController.ToggleWhitelist)
	admin.DELETE("/products/:id", productController.DeleteProduct)

	// Orders tab
	admin.GET("/orders", orderController.ListOrders)
	admin.PATCH("/orders/:id/status", orderController.UpdateOrderStatus)
	admin.GET("/orders/feed", func(c echo.Context) error {
		return ws.HandleOrderFeed(c, hub)
	})

	// CMS tab
	admin.GET("/site-config", adminController.GetSiteConfig)
	admin.PUT("/site-config", adminController.PublishSiteConfig)
	admin.POST("/site-config/featured-fits/reorder", adminController.ReorderFeaturedFits)
}
