package http

import (
	"build_a_bite/internal/config"
	"build_a_bite/internal/http/handlers"
	"build_a_bite/internal/http/middleware"
	"build_a_bite/internal/service"
	"build_a_bite/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, gameSvc *service.GameService, version string, cfg *config.Config) {
	h := handlers.NewHandler(db, gameSvc)
	healthHandler := handlers.NewHealthHandler(db, gameSvc.Rounds(), version)

	r.Use(middleware.RequestMetrics())

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Redis backs the IP limiters when configured; single-instance
	// deployments fall back to the in-process one.
	ipLimit := middleware.RedisRateLimit
	if cfg.RedisAddr == "" {
		ipLimit = middleware.SimpleRateLimit
	}

	api := r.Group("/api")
	api.Use(ipLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth
	authRL := ipLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)
	api.POST("/auth/guest", authRL, h.Guest)
	api.GET("/auth/profile", middleware.JWT(), h.Profile)

	// Round rate limiter (per player, not per IP)
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, cfg.GameRateWindow)

	// Game rounds
	api.POST("/game/start", middleware.JWT(), gameRL, h.StartGame)
	api.GET("/game/session/:id", middleware.JWT(), h.GetSession)
	api.POST("/game/session/:id/step", middleware.JWT(), gameRL, h.AddStep)
	api.POST("/game/session/:id/end", middleware.JWT(), h.EndSession)

	// Product catalog
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/instructions/:difficulty", h.Instructions)
	api.POST("/products", middleware.JWT(), h.CreateProduct)
	api.PUT("/products/:id", middleware.JWT(), h.UpdateProduct)
	api.DELETE("/products/:id", middleware.JWT(), h.DeleteProduct)
	api.DELETE("/products", middleware.JWT(), h.DeleteAllProducts)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/leaderboard/player/:id", h.GetPlayerScores)
	api.POST("/leaderboard", middleware.JWT(), h.SubmitScore)
	api.DELETE("/leaderboard/clear", middleware.JWT(), h.ClearLeaderboard)

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.JWT())
	{
		admin.GET("/players", h.GetAllPlayers)
		admin.GET("/attempts", h.GetAllAttempts)
		admin.GET("/leaderboard", h.DownloadLeaderboard)
	}

	// Live round feed
	r.GET("/ws/game/:id", ws.HandleRoundFeed(gameSvc))
}
