package main

import (
  "context"
  "flag"
  "fmt"
  "os"
  "time"
  "golang.org/x/crypto/bcrypt"
  "gopkg.in/yaml.v3"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/db"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/services"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type seedFile struct {
  Users []struct {
    Email    string `yaml:"email"`
    Name     string `yaml:"name"`
    Password string `yaml:"password"`
  } `yaml:"users"`
  Habits []struct {
    Name           string  `yaml:"name"`
    Description    string  `yaml:"description"`
    PointsValue    int     `yaml:"points_value"`
    CarbonSavingKg float64 `yaml:"carbon_saving_kg"`
    WasteSavingKg  float64 `yaml:"waste_saving_kg"`
  } `yaml:"habits"`
  Badges []struct {
    Name            string `yaml:"name"`
    Description     string `yaml:"description"`
    Icon            string `yaml:"icon"`
    PointsThreshold int    `yaml:"points_threshold"`
  } `yaml:"badges"`
  DemoLogsPerUser int `yaml:"demo_logs_per_user"`
}

func main() {
  var fixturePath string
  flag.StringVar(&fixturePath, "file", "cmd/seed/seed.yaml", "path to the YAML seed fixture")
  flag.Parse()

  log, err := logger.New(os.Getenv("LOG_MODE"))
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  raw, err := os.ReadFile(fixturePath)
  if err != nil {
    log.Fatal("Failed to read seed fixture", "path", fixturePath, "error", err)
  }
  var fixture seedFile
  if err := yaml.Unmarshal(raw, &fixture); err != nil {
    log.Fatal("Failed to parse seed fixture", "path", fixturePath, "error", err)
  }
  if fixture.DemoLogsPerUser <= 0 {
    fixture.DemoLogsPerUser = 5
  }

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err := postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  ctx := context.Background()
  userRepo := repos.NewUserRepo(thePG, log)
  habitRepo := repos.NewHabitRepo(thePG, log)
  activityLogRepo := repos.NewActivityLogRepo(thePG, log)
  badgeRepo := repos.NewBadgeRepo(thePG, log)
  userBadgeRepo := repos.NewUserBadgeRepo(thePG, log)

  // Wipe in FK order.
  log.Info("Clearing existing data...")
  for _, model := range []interface{}{
    &types.UserBadge{},
    &types.ActivityLog{},
    &types.Badge{},
    &types.Habit{},
    &types.User{},
  } {
    if err := thePG.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
      log.Fatal("Failed to clear table", "error", err)
    }
  }

  // Users
  log.Info("Seeding users...", "count", len(fixture.Users))
  users := make([]*types.User, 0, len(fixture.Users))
  for _, u := range fixture.Users {
    hash, hErr := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
    if hErr != nil {
      log.Fatal("Failed to hash seed password", "email", u.Email, "error", hErr)
    }
    users = append(users, &types.User{
      Email:        u.Email,
      Name:         u.Name,
      PasswordHash: string(hash),
    })
  }
  if _, err := userRepo.Create(ctx, nil, users); err != nil {
    log.Fatal("Failed to seed users", "error", err)
  }

  // Habits
  log.Info("Seeding habits...", "count", len(fixture.Habits))
  habits := make([]*types.Habit, 0, len(fixture.Habits))
  for _, h := range fixture.Habits {
    habits = append(habits, &types.Habit{
      Name:           h.Name,
      Description:    h.Description,
      PointsValue:    h.PointsValue,
      CarbonSavingKg: h.CarbonSavingKg,
      WasteSavingKg:  h.WasteSavingKg,
    })
  }
  if _, err := habitRepo.Create(ctx, nil, habits); err != nil {
    log.Fatal("Failed to seed habits", "error", err)
  }

  // Badges
  log.Info("Seeding badges...", "count", len(fixture.Badges))
  badges := make([]*types.Badge, 0, len(fixture.Badges))
  for _, b := range fixture.Badges {
    badges = append(badges, &types.Badge{
      Name:            b.Name,
      Description:     b.Description,
      Icon:            b.Icon,
      PointsThreshold: b.PointsThreshold,
    })
  }
  if _, err := badgeRepo.Create(ctx, nil, badges); err != nil {
    log.Fatal("Failed to seed badges", "error", err)
  }

  // Demo activity: each user gets one log per day going back N days, with
  // totals and badge awards derived the same way the ledger derives them.
  log.Info("Seeding demo activity...", "logs_per_user", fixture.DemoLogsPerUser)
  now := time.Now().UTC()
  for ui, user := range users {
    total := 0
    for i := 0; i < fixture.DemoLogsPerUser; i++ {
      habit := habits[(i+ui)%len(habits)]
      loggedAt := now.AddDate(0, 0, -i)
      entry := &types.ActivityLog{
        UserID:   user.ID,
        HabitID:  habit.ID,
        Points:   habit.PointsValue,
        LoggedAt: loggedAt,
        Notes:    fmt.Sprintf("Did %s on %s.", habit.Name, loggedAt.Format("Mon Jan 2")),
      }
      if _, err := activityLogRepo.Create(ctx, nil, []*types.ActivityLog{entry}); err != nil {
        log.Fatal("Failed to seed activity log", "error", err)
      }
      total += habit.PointsValue
    }

    lastLogged := datatypes.Date(services.UTCDay(now))
    if err := userRepo.UpdateFields(ctx, nil, user.ID, map[string]interface{}{
      "total_points":     total,
      "current_streak":   fixture.DemoLogsPerUser,
      "last_logged_date": lastLogged,
    }); err != nil {
      log.Fatal("Failed to update seeded totals", "error", err)
    }

    awards := make([]*types.UserBadge, 0)
    for _, badge := range badges {
      if badge.PointsThreshold <= total {
        awards = append(awards, &types.UserBadge{
          UserID:   user.ID,
          BadgeID:  badge.ID,
          EarnedAt: now,
        })
      }
    }
    if _, err := userBadgeRepo.Create(ctx, nil, awards); err != nil {
      log.Fatal("Failed to seed badge awards", "error", err)
    }
  }

  log.Info("Database has been seeded.")
}
