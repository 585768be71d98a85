package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
  "github.com/yungbote/ecohabit-backend/internal/repos"
)

// DashboardLog is one recent activity row with its habit name joined in.
type DashboardLog struct {
  ID        uint      `json:"id"`
  HabitName string    `json:"habit_name"`
  LoggedAt  time.Time `json:"logged_at"`
  Points    int       `json:"points"`
  Notes     string    `json:"notes,omitempty"`
}

type Dashboard struct {
  Name          string              `json:"name"`
  TotalPoints   int                 `json:"totalPoints"`
  CurrentStreak int                 `json:"currentStreak"`
  ActivityLogs  []*DashboardLog     `json:"activity_logs"`
  Badges        []*repos.EarnedBadge `json:"badges"`
}

type UserService interface {
  GetDashboard(ctx context.Context, userID uint) (*Dashboard, error)
}

type userService struct {
  db        *gorm.DB
  log       *logger.Logger
  userRepo  repos.UserRepo
  badgeRepo repos.BadgeRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, badgeRepo repos.BadgeRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo, badgeRepo: badgeRepo}
}

func (us *userService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
  user, uErr := us.userRepo.GetByID(ctx, nil, userID)
  if uErr != nil {
    if errors.Is(uErr, gorm.ErrRecordNotFound) {
      return nil, pkgerrors.ErrUserNotFound
    }
    return nil, fmt.Errorf("Failed to look up user: %w", uErr)
  }

  var recentLogs []*DashboardLog
  if err := us.db.WithContext(ctx).Raw(`
    SELECT activity_log.id, habit.name AS habit_name, activity_log.logged_at, activity_log.points, activity_log.notes
    FROM activity_log
    JOIN habit ON habit.id = activity_log.habit_id
    WHERE activity_log.user_id = ?
    ORDER BY activity_log.logged_at DESC
    LIMIT 10
  `, userID).Scan(&recentLogs).Error; err != nil {
    return nil, fmt.Errorf("Failed to load recent activity: %w", err)
  }

  earned, bErr := us.badgeRepo.ListEarnedByUser(ctx, nil, userID)
  if bErr != nil {
    return nil, fmt.Errorf("Failed to load earned badges: %w", bErr)
  }

  if recentLogs == nil {
    recentLogs = []*DashboardLog{}
  }
  if earned == nil {
    earned = []*repos.EarnedBadge{}
  }

  return &Dashboard{
    Name:          user.Name,
    TotalPoints:   user.TotalPoints,
    CurrentStreak: user.CurrentStreak,
    ActivityLogs:  recentLogs,
    Badges:        earned,
  }, nil
}
