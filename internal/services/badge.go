package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

type BadgesOverview struct {
  All    []*types.Badge       `json:"badges"`
  Earned []*repos.EarnedBadge `json:"earned"`
}

type BadgeService interface {
  Overview(ctx context.Context, userID uint) (*BadgesOverview, error)
}

type badgeService struct {
  db        *gorm.DB
  log       *logger.Logger
  badgeRepo repos.BadgeRepo
}

func NewBadgeService(db *gorm.DB, log *logger.Logger, badgeRepo repos.BadgeRepo) BadgeService {
  serviceLog := log.With("service", "BadgeService")
  return &badgeService{db: db, log: serviceLog, badgeRepo: badgeRepo}
}

func (bs *badgeService) Overview(ctx context.Context, userID uint) (*BadgesOverview, error) {
  all, aErr := bs.badgeRepo.List(ctx, nil)
  if aErr != nil {
    return nil, fmt.Errorf("Failed to list badges: %w", aErr)
  }
  earned, eErr := bs.badgeRepo.ListEarnedByUser(ctx, nil, userID)
  if eErr != nil {
    return nil, fmt.Errorf("Failed to list earned badges: %w", eErr)
  }
  if all == nil {
    all = []*types.Badge{}
  }
  if earned == nil {
    earned = []*repos.EarnedBadge{}
  }
  return &BadgesOverview{All: all, Earned: earned}, nil
}
