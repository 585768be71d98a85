package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type HabitRepo interface {
  Create(ctx context.Context, tx *gorm.DB, habits []*types.Habit) ([]*types.Habit, error)
  GetByID(ctx context.Context, tx *gorm.DB, habitID uint) (*types.Habit, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Habit, error)
}

type habitRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
  repoLog := baseLog.With("repo", "HabitRepo")
  return &habitRepo{db: db, log: repoLog}
}

func (hr *habitRepo) Create(ctx context.Context, tx *gorm.DB, habits []*types.Habit) ([]*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  if len(habits) == 0 {
    return []*types.Habit{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&habits).Error; err != nil {
    return nil, err
  }

  return habits, nil
}

func (hr *habitRepo) GetByID(ctx context.Context, tx *gorm.DB, habitID uint) (*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  var result types.Habit
  if err := transaction.WithContext(ctx).
    Where("id = ?", habitID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (hr *habitRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Habit, error) {
  transaction := tx
  if transaction == nil {
    transaction = hr.db
  }

  var results []*types.Habit
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
