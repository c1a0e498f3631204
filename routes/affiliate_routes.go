package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dkadris/dkadris_backend/controllers"
	"github.com/dkadris/dkadris_backend/middleware"
)

// RegisterAffiliateRoutes sets up the partner dashboard routes
func RegisterAffiliateRoutes(e *echo.Echo, affiliateController *controllers.AffiliateController) {
	affiliate := e.Group("/api/affiliate")
	affiliate.Use(middleware.JWTMiddleware())
	affiliate.Use(middleware.RequireUserType(middleware.UserTypeAffiliate))

	affiliate.GET("/dashboard", affiliateController.GetDashboard)
	affiliate.GET("/qrcode", affiliateController.GetReferralQR)
}
