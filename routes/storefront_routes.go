package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dkadris/dkadris_backend/controllers"
)

// RegisterStorefrontRoutes sets up the public shopping surface: the catalog
// with referral-link capture, checkout, and the published storefront content.
func RegisterStorefrontRoutes(e *echo.Echo, productController *controllers.ProductController, orderController *controllers.OrderController, adminController *controllers.AdminController) {
	e.GET("/api/catalog", productController.GetCatalog)
	e.POST("/api/orders", orderController.Checkout)
	e.GET("/api/site-config", adminController.GetSiteConfig)
}
