package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/utils"
  "github.com/yungbote/ecohabit-backend/internal/db"
  "github.com/yungbote/ecohabit-backend/internal/clients/redis"
  "github.com/yungbote/ecohabit-backend/internal/observability"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/services"
  "github.com/yungbote/ecohabit-backend/internal/handlers"
  "github.com/yungbote/ecohabit-backend/internal/middleware"
  "github.com/yungbote/ecohabit-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "ecohabit-backend",
    Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
    Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  habitRepo := repos.NewHabitRepo(thePG, log)
  activityLogRepo := repos.NewActivityLogRepo(thePG, log)
  badgeRepo := repos.NewBadgeRepo(thePG, log)
  userBadgeRepo := repos.NewUserBadgeRepo(thePG, log)

  // Leaderboard cache (optional)
  leaderboardCache, lcErr := redis.NewLeaderboardCache(log)
  if lcErr != nil {
    log.Warn("Leaderboard cache unavailable, leaderboard will rank via SQL", "error", lcErr)
    leaderboardCache = nil
  } else {
    defer leaderboardCache.Close()
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  activityService := services.NewActivityService(thePG, log, userRepo, habitRepo, activityLogRepo, badgeRepo, userBadgeRepo, leaderboardCache)
  userService := services.NewUserService(thePG, log, userRepo, badgeRepo)
  habitService := services.NewHabitService(thePG, log, habitRepo)
  leaderboardService := services.NewLeaderboardService(thePG, log, userRepo, leaderboardCache)
  analyticsService := services.NewAnalyticsService(thePG, log)
  badgeService := services.NewBadgeService(thePG, log, badgeRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  activityHandler := handlers.NewActivityHandler(activityService)
  habitHandler := handlers.NewHabitHandler(habitService)
  dashboardHandler := handlers.NewDashboardHandler(userService)
  leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
  analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
  badgeHandler := handlers.NewBadgeHandler(badgeService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    ActivityHandler:    activityHandler,
    HabitHandler:       habitHandler,
    DashboardHandler:   dashboardHandler,
    LeaderboardHandler: leaderboardHandler,
    AnalyticsHandler:   analyticsHandler,
    BadgeHandler:       badgeHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
