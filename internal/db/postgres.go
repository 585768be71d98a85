package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/types"
  "github.com/yungbote/ecohabit-backend/internal/utils"
  "github.com/yungbote/ecohabit-backend/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "ecohabit", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Habit{},
    &types.ActivityLog{},
    &types.Badge{},
    &types.UserBadge{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    sql  string
  }{
    {
      name: "fk_activity_log_user_id",
      sql: `
        ALTER TABLE "activity_log"
        ADD CONSTRAINT "fk_activity_log_user_id"
        FOREIGN KEY ("user_id")
        REFERENCES "user"("id")
        ON DELETE CASCADE
      `,
    },
    {
      name: "fk_activity_log_habit_id",
      sql: `
        ALTER TABLE "activity_log"
        ADD CONSTRAINT "fk_activity_log_habit_id"
        FOREIGN KEY ("habit_id")
        REFERENCES "habit"("id")
        ON DELETE CASCADE
      `,
    },
    {
      name: "fk_user_badge_user_id",
      sql: `
        ALTER TABLE "user_badge"
        ADD CONSTRAINT "fk_user_badge_user_id"
        FOREIGN KEY ("user_id")
        REFERENCES "user"("id")
        ON DELETE CASCADE
      `,
    },
    {
      name: "fk_user_badge_badge_id",
      sql: `
        ALTER TABLE "user_badge"
        ADD CONSTRAINT "fk_user_badge_badge_id"
        FOREIGN KEY ("badge_id")
        REFERENCES "badge"("id")
        ON DELETE CASCADE
      `,
    },
  }
  for _, c := range constraints {
    var count int64
    if err := s.db.Raw(
      `SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, c.name,
    ).Scan(&count).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if count > 0 {
      continue
    }
    if err := s.db.Exec(c.sql).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
