package services

import (
  "context"
  "fmt"
  "time"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
)

type DailyPoints struct {
  Date   string `json:"date"`
  Points int    `json:"points"`
}

type HabitBreakdown struct {
  Name   string `json:"name"`
  Count  int    `json:"count"`
  Points int    `json:"points"`
}

type AnalyticsSummary struct {
  DailyPoints    []*DailyPoints    `json:"dailyPoints"`
  HabitBreakdown []*HabitBreakdown `json:"habitBreakdown"`
}

type AnalyticsService interface {
  Summary(ctx context.Context, userID uint) (*AnalyticsSummary, error)
}

type analyticsService struct {
  db  *gorm.DB
  log *logger.Logger
  now func() time.Time
}

func NewAnalyticsService(db *gorm.DB, log *logger.Logger) AnalyticsService {
  serviceLog := log.With("service", "AnalyticsService")
  return &analyticsService{db: db, log: serviceLog, now: time.Now}
}

// Summary covers the trailing 7 UTC calendar days: per-day point sums
// (zero-filled, oldest first) and a per-habit count/points breakdown.
func (ans *analyticsService) Summary(ctx context.Context, userID uint) (*AnalyticsSummary, error) {
  today := UTCDay(ans.now())
  windowStart := today.AddDate(0, 0, -6)

  type logRow struct {
    LoggedAt time.Time
    Points   int
  }

  var rows []logRow
  var breakdown []*HabitBreakdown

  group, groupCtx := errgroup.WithContext(ctx)
  group.Go(func() error {
    if err := ans.db.WithContext(groupCtx).Raw(`
      SELECT activity_log.logged_at, activity_log.points
      FROM activity_log
      WHERE activity_log.user_id = ? AND activity_log.logged_at >= ?
    `, userID, windowStart).Scan(&rows).Error; err != nil {
      return fmt.Errorf("Failed to load activity window: %w", err)
    }
    return nil
  })
  group.Go(func() error {
    if err := ans.db.WithContext(groupCtx).Raw(`
      SELECT habit.name AS name, COUNT(*) AS count, SUM(activity_log.points) AS points
      FROM activity_log
      JOIN habit ON habit.id = activity_log.habit_id
      WHERE activity_log.user_id = ? AND activity_log.logged_at >= ?
      GROUP BY habit.name
      ORDER BY points DESC
    `, userID, windowStart).Scan(&breakdown).Error; err != nil {
      return fmt.Errorf("Failed to load habit breakdown: %w", err)
    }
    return nil
  })
  if err := group.Wait(); err != nil {
    return nil, err
  }

  perDay := make(map[string]int, 7)
  for _, row := range rows {
    day := UTCDay(row.LoggedAt).Format("2006-01-02")
    perDay[day] += row.Points
  }

  daily := make([]*DailyPoints, 0, 7)
  for i := 0; i < 7; i++ {
    day := windowStart.AddDate(0, 0, i).Format("2006-01-02")
    daily = append(daily, &DailyPoints{Date: day, Points: perDay[day]})
  }

  if breakdown == nil {
    breakdown = []*HabitBreakdown{}
  }

  return &AnalyticsSummary{
    DailyPoints:    daily,
    HabitBreakdown: breakdown,
  }, nil
}
