package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/ecohabit-backend/internal/handlers"
  "github.com/yungbote/ecohabit-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  ActivityHandler    *handlers.ActivityHandler
  HabitHandler       *handlers.HabitHandler
  DashboardHandler   *handlers.DashboardHandler
  LeaderboardHandler *handlers.LeaderboardHandler
  AnalyticsHandler   *handlers.AnalyticsHandler
  BadgeHandler       *handlers.BadgeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("ecohabit-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
    api.POST("/refresh", cfg.AuthHandler.Refresh)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/activity/log", cfg.ActivityHandler.Log)
  protected.GET("/habits", cfg.HabitHandler.List)
  protected.GET("/dashboard", cfg.DashboardHandler.Get)
  protected.GET("/leaderboard", cfg.LeaderboardHandler.Top)
  protected.GET("/analytics", cfg.AnalyticsHandler.Summary)
  protected.GET("/badges", cfg.BadgeHandler.Overview)

  return router
}
