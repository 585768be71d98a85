package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type UserBadgeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, userBadges []*types.UserBadge) ([]*types.UserBadge, error)
  ExistsFor(ctx context.Context, tx *gorm.DB, userID, badgeID uint) (bool, error)
  CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
}

type userBadgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UserBadgeRepo {
  repoLog := baseLog.With("repo", "UserBadgeRepo")
  return &userBadgeRepo{db: db, log: repoLog}
}

func (ubr *userBadgeRepo) Create(ctx context.Context, tx *gorm.DB, userBadges []*types.UserBadge) ([]*types.UserBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  if len(userBadges) == 0 {
    return []*types.UserBadge{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&userBadges).Error; err != nil {
    return nil, err
  }

  return userBadges, nil
}

func (ubr *userBadgeRepo) ExistsFor(ctx context.Context, tx *gorm.DB, userID, badgeID uint) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserBadge{}).
    Where("user_id = ? AND badge_id = ?", userID, badgeID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (ubr *userBadgeRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ubr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.UserBadge{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
