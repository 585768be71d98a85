package redis

import (
  "context"
  "fmt"
  "os"
  "strconv"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/yungbote/ecohabit-backend/internal/logger"
)

// LeaderboardCache mirrors user point totals into a redis sorted set so the
// leaderboard read path does not have to rank the user table on every request.
// It is a cache only: the relational store stays authoritative and callers
// fall back to SQL whenever the set is empty or redis is unavailable.
type LeaderboardCache interface {
  UpdateScore(ctx context.Context, userID uint, totalPoints int) error
  TopIDs(ctx context.Context, limit int) ([]uint, error)
  Rebuild(ctx context.Context, scores map[uint]int) error
  Close() error
}

type leaderboardCache struct {
  log *logger.Logger
  rdb *goredis.Client
  key string
}

func NewLeaderboardCache(log *logger.Logger) (LeaderboardCache, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }
  key := strings.TrimSpace(os.Getenv("REDIS_LEADERBOARD_KEY"))
  if key == "" {
    key = "ecohabit:leaderboard"
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &leaderboardCache{
    log: log.With("service", "RedisLeaderboardCache"),
    rdb: rdb,
    key: key,
  }, nil
}

func (lc *leaderboardCache) UpdateScore(ctx context.Context, userID uint, totalPoints int) error {
  member := strconv.FormatUint(uint64(userID), 10)
  if err := lc.rdb.ZAdd(ctx, lc.key, goredis.Z{
    Score:  float64(totalPoints),
    Member: member,
  }).Err(); err != nil {
    return fmt.Errorf("zadd leaderboard: %w", err)
  }
  return nil
}

func (lc *leaderboardCache) TopIDs(ctx context.Context, limit int) ([]uint, error) {
  if limit <= 0 {
    return nil, nil
  }
  members, err := lc.rdb.ZRevRange(ctx, lc.key, 0, int64(limit-1)).Result()
  if err != nil {
    return nil, fmt.Errorf("zrevrange leaderboard: %w", err)
  }
  ids := make([]uint, 0, len(members))
  for _, m := range members {
    id, perr := strconv.ParseUint(m, 10, 64)
    if perr != nil {
      lc.log.Warn("Skipping malformed leaderboard member", "member", m)
      continue
    }
    ids = append(ids, uint(id))
  }
  return ids, nil
}

func (lc *leaderboardCache) Rebuild(ctx context.Context, scores map[uint]int) error {
  if err := lc.rdb.Del(ctx, lc.key).Err(); err != nil {
    return fmt.Errorf("del leaderboard: %w", err)
  }
  if len(scores) == 0 {
    return nil
  }
  entries := make([]goredis.Z, 0, len(scores))
  for id, points := range scores {
    entries = append(entries, goredis.Z{
      Score:  float64(points),
      Member: strconv.FormatUint(uint64(id), 10),
    })
  }
  if err := lc.rdb.ZAdd(ctx, lc.key, entries...).Err(); err != nil {
    return fmt.Errorf("zadd leaderboard: %w", err)
  }
  return nil
}

func (lc *leaderboardCache) Close() error {
  return lc.rdb.Close()
}
