package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type ActivityLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, logs []*types.ActivityLog) ([]*types.ActivityLog, error)
  CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
  SumPointsByUser(ctx context.Context, tx *gorm.DB, userID uint) (int, error)
}

type activityLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
  repoLog := baseLog.With("repo", "ActivityLogRepo")
  return &activityLogRepo{db: db, log: repoLog}
}

func (ar *activityLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.ActivityLog) ([]*types.ActivityLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(logs) == 0 {
    return []*types.ActivityLog{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
    return nil, err
  }

  return logs, nil
}

func (ar *activityLogRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ActivityLog{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *activityLogRepo) SumPointsByUser(ctx context.Context, tx *gorm.DB, userID uint) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var total *int
  if err := transaction.WithContext(ctx).
    Model(&types.ActivityLog{}).
    Select("SUM(points)").
    Where("user_id = ?", userID).
    Scan(&total).Error; err != nil {
    return 0, err
  }
  if total == nil {
    return 0, nil
  }
  return *total, nil
}
