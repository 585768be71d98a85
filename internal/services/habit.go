package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type HabitService interface {
  ListHabits(ctx context.Context) ([]*types.Habit, error)
}

type habitService struct {
  db        *gorm.DB
  log       *logger.Logger
  habitRepo repos.HabitRepo
}

func NewHabitService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo) HabitService {
  serviceLog := log.With("service", "HabitService")
  return &habitService{db: db, log: serviceLog, habitRepo: habitRepo}
}

func (hs *habitService) ListHabits(ctx context.Context) ([]*types.Habit, error) {
  habits, err := hs.habitRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list habits: %w", err)
  }
  return habits, nil
}
