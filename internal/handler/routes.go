package handler

import (
	"github.com/dafibh/fortuna/caja-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	Account   *AccountHandler
	Dashboard *DashboardHandler
	Display   *DisplayHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, refreshLimiter *middleware.RateLimiter, h Handlers) {
	// WebSocket authenticates with the token query parameter
	e.GET("/ws", h.WebSocket.HandleWS)

	api := e.Group("/api/v1")

	// Display registry (public)
	api.GET("/display/primitives", h.Display.GetPrimitives)

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.GET("/me", h.Account.Me)
	auth.POST("/session", h.Account.Session)
	auth.POST("/logout", h.Account.Logout)
	auth.POST("/avatar", h.Account.UploadAvatar)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.Authenticate())
	dashboard.POST("/activate", h.Dashboard.Activate)
	dashboard.DELETE("", h.Dashboard.Deactivate)
	dashboard.GET("/summary", h.Dashboard.GetSummary)
	dashboard.GET("/invoices", h.Dashboard.GetInvoices)
	dashboard.GET("/chart", h.Dashboard.GetChart)
	dashboard.GET("/severity", h.Dashboard.GetSeverity)
	dashboard.POST("/exchange-rate/refresh", h.Dashboard.RefreshExchangeRate, middleware.RateLimitMiddleware(refreshLimiter))
}
