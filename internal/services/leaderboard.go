package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/clients/redis"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  "github.com/yungbote/ecohabit-backend/internal/repos"
)

type LeaderboardEntry struct {
  ID          uint   `json:"id"`
  Name        string `json:"name"`
  TotalPoints int    `json:"total_points"`
}

type LeaderboardService interface {
  Top(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

type leaderboardService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
  cache    redis.LeaderboardCache
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, cache redis.LeaderboardCache) LeaderboardService {
  serviceLog := log.With("service", "LeaderboardService")
  return &leaderboardService{db: db, log: serviceLog, userRepo: userRepo, cache: cache}
}

// Top returns the highest-scoring users. The redis sorted set serves the
// ranking when it has entries; SQL ordering is the fallback and the source
// used to reseed the cache.
func (ls *leaderboardService) Top(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
  if limit <= 0 {
    limit = 10
  }

  if ls.cache != nil {
    if entries, err := ls.topFromCache(ctx, limit); err != nil {
      ls.log.Warn("Leaderboard cache read failed, falling back to SQL", "error", err)
    } else if len(entries) > 0 {
      return entries, nil
    }
  }

  users, err := ls.userRepo.ListTopByPoints(ctx, nil, limit)
  if err != nil {
    return nil, fmt.Errorf("Failed to rank users: %w", err)
  }

  entries := make([]*LeaderboardEntry, 0, len(users))
  scores := make(map[uint]int, len(users))
  for _, user := range users {
    entries = append(entries, &LeaderboardEntry{
      ID:          user.ID,
      Name:        user.Name,
      TotalPoints: user.TotalPoints,
    })
    scores[user.ID] = user.TotalPoints
  }

  if ls.cache != nil && len(scores) > 0 {
    if rErr := ls.cache.Rebuild(ctx, scores); rErr != nil {
      ls.log.Warn("Failed to reseed leaderboard cache", "error", rErr)
    }
  }
  return entries, nil
}

func (ls *leaderboardService) topFromCache(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
  ids, err := ls.cache.TopIDs(ctx, limit)
  if err != nil {
    return nil, err
  }
  if len(ids) == 0 {
    return nil, nil
  }
  users, uErr := ls.userRepo.GetByIDs(ctx, nil, ids)
  if uErr != nil {
    return nil, uErr
  }
  byID := make(map[uint]*LeaderboardEntry, len(users))
  for _, user := range users {
    byID[user.ID] = &LeaderboardEntry{
      ID:          user.ID,
      Name:        user.Name,
      TotalPoints: user.TotalPoints,
    }
  }
  // Preserve the cache's ranking order; drop ids whose rows vanished.
  entries := make([]*LeaderboardEntry, 0, len(ids))
  for _, id := range ids {
    if entry, ok := byID[id]; ok {
      entries = append(entries, entry)
    }
  }
  return entries, nil
}
