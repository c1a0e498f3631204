package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dkadris/dkadris_backend/controllers"
	"github.com/dkadris/dkadris_backend/middleware"
)

// RegisterAuthRoutes sets up partner registration and authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	// Public authentication routes
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/forgot-password", authController.ForgotPassword)
	e.POST("/api/auth/refresh-token", authController.RefreshToken)

	// Routes requiring a valid partner token
	auth := e.Group("/api/auth")
	auth.Use(middleware.JWTMiddleware())
	auth.POST("/verify", authController.Verify)
	auth.POST("/logout", authController.Logout)
}
