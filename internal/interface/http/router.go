package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbuddy/finance-advisor/internal/domain/auth"
	"github.com/finbuddy/finance-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// Session auth is applied only when a signing secret is configured.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	if cfg.Auth.Enabled() {
		api.POST("/sessions", handler.CreateSession)
		api.Use(authMiddleware(authSvc))
	}
	{
		api.POST("/chat", handler.Chat)
		api.GET("/chat/status", handler.ChatStatus)
		api.POST("/chat/switch", handler.ChatSwitch)
		api.GET("/chat/connections", handler.ChatConnections)
		api.GET("/chat/history/:userId", handler.ChatHistory)

		api.PUT("/profiles/:id", handler.UpsertProfile)
		api.GET("/profiles/:id", handler.GetProfile)
		api.GET("/profiles/:id/recommendations", handler.ProfileRecommendations)

		api.POST("/budget/summary", handler.BudgetSummary)
		api.POST("/budget/insights", handler.BudgetInsights)

		api.POST("/planner/subscriptions", handler.CreateSubscription)
		api.GET("/planner/subscriptions", handler.ListSubscriptions)
		api.DELETE("/planner/subscriptions/:id", handler.DeleteSubscription)

		api.POST("/planner/splits", handler.CreateSplit)
		api.GET("/planner/splits", handler.ListSplits)
		api.POST("/planner/splits/:id/settle", handler.SettleSplit)

		api.POST("/planner/goals", handler.CreateGoal)
		api.GET("/planner/goals", handler.ListGoals)
		api.DELETE("/planner/goals/:id", handler.DeleteGoal)
		api.POST("/planner/goals/:id/contribute", handler.Contribute)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
