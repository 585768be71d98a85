package repos

import (
  "context"
  "time"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

// EarnedBadge is a badge joined with the caller's award record.
type EarnedBadge struct {
  ID              uint      `json:"id"`
  Name            string    `json:"name"`
  Description     string    `json:"description"`
  Icon            string    `json:"icon"`
  PointsThreshold int       `json:"points_threshold"`
  EarnedAt        time.Time `json:"earned_at"`
}

type BadgeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, badges []*types.Badge) ([]*types.Badge, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Badge, error)
  ListUnawardedAtOrBelow(ctx context.Context, tx *gorm.DB, userID uint, totalPoints int) ([]*types.Badge, error)
  ListEarnedByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*EarnedBadge, error)
}

type badgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
  repoLog := baseLog.With("repo", "BadgeRepo")
  return &badgeRepo{db: db, log: repoLog}
}

func (br *badgeRepo) Create(ctx context.Context, tx *gorm.DB, badges []*types.Badge) ([]*types.Badge, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if len(badges) == 0 {
    return []*types.Badge{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&badges).Error; err != nil {
    return nil, err
  }

  return badges, nil
}

func (br *badgeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Badge, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Badge
  if err := transaction.WithContext(ctx).
    Order("points_threshold ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *badgeRepo) ListUnawardedAtOrBelow(ctx context.Context, tx *gorm.DB, userID uint, totalPoints int) ([]*types.Badge, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.Badge
  if err := transaction.WithContext(ctx).
    Where("points_threshold <= ?", totalPoints).
    Where("NOT EXISTS (SELECT 1 FROM user_badge WHERE user_badge.badge_id = badge.id AND user_badge.user_id = ?)", userID).
    Order("points_threshold ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *badgeRepo) ListEarnedByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*EarnedBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*EarnedBadge
  if err := transaction.WithContext(ctx).
    Model(&types.Badge{}).
    Select("badge.id, badge.name, badge.description, badge.icon, badge.points_threshold, user_badge.earned_at").
    Joins("JOIN user_badge ON user_badge.badge_id = badge.id").
    Where("user_badge.user_id = ?", userID).
    Order("user_badge.earned_at ASC").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
