package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dafibh/fortuna/caja-backend/docs"
	"github.com/dafibh/fortuna/caja-backend/internal/config"
	"github.com/dafibh/fortuna/caja-backend/internal/display"
	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/handler"
	"github.com/dafibh/fortuna/caja-backend/internal/metrics"
	"github.com/dafibh/fortuna/caja-backend/internal/middleware"
	"github.com/dafibh/fortuna/caja-backend/internal/repository/fixture"
	"github.com/dafibh/fortuna/caja-backend/internal/repository/postgres"
	"github.com/dafibh/fortuna/caja-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/caja-backend/internal/resilience"
	"github.com/dafibh/fortuna/caja-backend/internal/service"
	"github.com/dafibh/fortuna/caja-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Caja API
// @version 1.0
// @description Cash register dashboard backend
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	m := metrics.NewMetrics()

	// Snapshot source: postgres behind a circuit breaker, or the literal fixture
	var source domain.SnapshotSource = fixture.NewSnapshotSource()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		log.Info().Msg("Connected to database")

		source = resilience.NewBreakerSource("snapshot-db", postgres.NewSnapshotRepository(pool, cfg.BusinessLocation), m)
	} else {
		log.Info().Msg("DATABASE_URL not set, serving the fixed daily snapshot")
	}

	// Avatar storage is optional
	var avatarStorage storage.AvatarRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3AvatarRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize avatar storage")
		}
		avatarStorage = s3Repo
	} else {
		log.Warn().Msg("S3_BUCKET not set, avatar uploads disabled")
	}

	// Push stream and the shared display registry holding the message dispatcher
	hub := websocket.NewHub()
	registry := display.NewRegistry(hub)

	// Initialize services
	accountService := service.NewAccountService(m)
	avatarService := service.NewAvatarService(avatarStorage, accountService)
	dashboardService := service.NewDashboardService(source, accountService, registry.Messages(), service.DashboardConfig{
		BaseRate:   cfg.ExchangeBaseRate,
		ChartTheme: cfg.ChartTheme,
	}, m)

	// Initialize auth
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket validator")
	}
	refreshLimiter := middleware.NewRateLimiterWithConfig(cfg.RefreshRateLimit, cfg.RefreshBurst)
	defer refreshLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Account:   handler.NewAccountHandler(accountService, avatarService),
		Dashboard: handler.NewDashboardHandler(dashboardService, hub),
		Display:   handler.NewDisplayHandler(registry),
		WebSocket: handler.NewWebSocketHandler(hub, accountService, wsValidator, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"activeViews": dashboardService.ActiveViews(),
			"wsClients":   hub.TotalClientCount(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// API docs
	e.GET("/swagger/openapi3.json", handler.ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, refreshLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Release every dashboard subscription before dropping the push stream
	dashboardService.Shutdown()
	hub.CloseAll()

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
