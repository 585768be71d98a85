package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "go.opentelemetry.io/otel"
  "go.opentelemetry.io/otel/attribute"
  "go.opentelemetry.io/otel/trace"
  "github.com/yungbote/ecohabit-backend/internal/clients/redis"
  "github.com/yungbote/ecohabit-backend/internal/logger"
  pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
  "github.com/yungbote/ecohabit-backend/internal/repos"
  "github.com/yungbote/ecohabit-backend/internal/types"
)

// LogResult describes everything one successful log changed: the row that was
// written, the points it earned, the user's new totals, and any badges this
// call unlocked.
type LogResult struct {
  Log           *types.ActivityLog `json:"log"`
  PointsEarned  int                `json:"pointsEarned"`
  TotalPoints   int                `json:"totalPoints"`
  CurrentStreak int                `json:"currentStreak"`
  NewBadges     []*types.Badge     `json:"newBadges"`
}

type ActivityService interface {
  LogActivity(ctx context.Context, userID, habitID uint, notes string) (*LogResult, error)
}

type activityService struct {
  db               *gorm.DB
  log              *logger.Logger
  tracer           trace.Tracer
  userRepo         repos.UserRepo
  habitRepo        repos.HabitRepo
  activityLogRepo  repos.ActivityLogRepo
  badgeRepo        repos.BadgeRepo
  userBadgeRepo    repos.UserBadgeRepo
  leaderboardCache redis.LeaderboardCache
  now              func() time.Time
}

func NewActivityService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  habitRepo repos.HabitRepo,
  activityLogRepo repos.ActivityLogRepo,
  badgeRepo repos.BadgeRepo,
  userBadgeRepo repos.UserBadgeRepo,
  leaderboardCache redis.LeaderboardCache,
) ActivityService {
  serviceLog := log.With("service", "ActivityService")
  return &activityService{
    db:               db,
    log:              serviceLog,
    tracer:           otel.Tracer("ecohabit-backend/activity"),
    userRepo:         userRepo,
    habitRepo:        habitRepo,
    activityLogRepo:  activityLogRepo,
    badgeRepo:        badgeRepo,
    userBadgeRepo:    userBadgeRepo,
    leaderboardCache: leaderboardCache,
    now:              time.Now,
  }
}

// LogActivity runs the whole ledger update as one transaction: persist the
// log, bump total_points, advance the streak, and award every badge the new
// total qualifies for. Either all of it commits or none of it does.
func (as *activityService) LogActivity(ctx context.Context, userID, habitID uint, notes string) (*LogResult, error) {
  ctx, span := as.tracer.Start(ctx, "ActivityService.LogActivity", trace.WithAttributes(
    attribute.Int64("user.id", int64(userID)),
    attribute.Int64("habit.id", int64(habitID)),
  ))
  defer span.End()

  var result LogResult
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    habit, hErr := as.habitRepo.GetByID(ctx, tx, habitID)
    if hErr != nil {
      if errors.Is(hErr, gorm.ErrRecordNotFound) {
        return pkgerrors.ErrHabitNotFound
      }
      return fmt.Errorf("Failed to look up habit: %w", hErr)
    }

    // Lock the user row for the rest of the transaction so concurrent logs
    // for the same user serialize; different users hit different rows.
    user, uErr := as.userRepo.GetByIDForUpdate(ctx, tx, userID)
    if uErr != nil {
      if errors.Is(uErr, gorm.ErrRecordNotFound) {
        return pkgerrors.ErrUserNotFound
      }
      return fmt.Errorf("Failed to look up user: %w", uErr)
    }

    now := as.now()
    transition := AdvanceStreak(lastLogOf(user), now, user.CurrentStreak)

    entry := &types.ActivityLog{
      UserID:   userID,
      HabitID:  habitID,
      Points:   habit.PointsValue,
      LoggedAt: now.UTC(),
      Notes:    notes,
    }
    if _, lErr := as.activityLogRepo.Create(ctx, tx, []*types.ActivityLog{entry}); lErr != nil {
      return fmt.Errorf("Failed to create activity log: %w", lErr)
    }

    updates := map[string]interface{}{
      "total_points": gorm.Expr("total_points + ?", habit.PointsValue),
    }
    if transition.Changed {
      lastLogged := datatypes.Date(transition.LastLoggedDate)
      updates["current_streak"] = transition.CurrentStreak
      updates["last_logged_date"] = lastLogged
    }
    if upErr := as.userRepo.UpdateFields(ctx, tx, userID, updates); upErr != nil {
      return fmt.Errorf("Failed to update user totals: %w", upErr)
    }

    // The row lock makes this arithmetic safe: nobody else can have moved
    // total_points between our read and the increment above.
    newTotal := user.TotalPoints + habit.PointsValue

    earned, bErr := as.badgeRepo.ListUnawardedAtOrBelow(ctx, tx, userID, newTotal)
    if bErr != nil {
      return fmt.Errorf("Failed to evaluate badges: %w", bErr)
    }
    if len(earned) > 0 {
      awards := make([]*types.UserBadge, 0, len(earned))
      for _, badge := range earned {
        awards = append(awards, &types.UserBadge{
          UserID:   userID,
          BadgeID:  badge.ID,
          EarnedAt: now.UTC(),
        })
      }
      if _, aErr := as.userBadgeRepo.Create(ctx, tx, awards); aErr != nil {
        return fmt.Errorf("Failed to award badges: %w", aErr)
      }
    }

    result = LogResult{
      Log:           entry,
      PointsEarned:  habit.PointsValue,
      TotalPoints:   newTotal,
      CurrentStreak: transition.CurrentStreak,
      NewBadges:     earned,
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  span.SetAttributes(
    attribute.Int("points.earned", result.PointsEarned),
    attribute.Int("badges.new", len(result.NewBadges)),
  )
  as.refreshLeaderboard(ctx, userID, result.TotalPoints)
  as.log.Debug("Activity logged",
    "user_id", userID,
    "habit_id", habitID,
    "points_earned", result.PointsEarned,
    "total_points", result.TotalPoints,
    "current_streak", result.CurrentStreak,
    "new_badges", len(result.NewBadges),
  )
  return &result, nil
}

// refreshLeaderboard runs after commit and is best-effort: the relational
// store is authoritative, a stale cache entry just means the leaderboard
// rebuilds from SQL on its next read.
func (as *activityService) refreshLeaderboard(ctx context.Context, userID uint, totalPoints int) {
  if as.leaderboardCache == nil {
    return
  }
  if err := as.leaderboardCache.UpdateScore(ctx, userID, totalPoints); err != nil {
    as.log.Warn("Failed to refresh leaderboard cache", "user_id", userID, "error", err)
  }
}

func lastLogOf(user *types.User) LastLog {
  if user.LastLoggedDate == nil {
    return NeverLogged()
  }
  return LoggedOn(time.Time(*user.LastLoggedDate))
}
