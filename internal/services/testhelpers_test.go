package services

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/ecohabit-backend/internal/logger"
	"github.com/yungbote/ecohabit-backend/internal/repos"
	"github.com/yungbote/ecohabit-backend/internal/types"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// openTestDB opens a per-test sqlite database. _txlock=immediate makes gorm
// transactions take the write lock up front so concurrent LogActivity calls
// queue on the busy timeout instead of failing.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s/ecohabit.db?_busy_timeout=5000&_txlock=immediate", t.TempDir())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Habit{},
		&types.ActivityLog{},
		&types.Badge{},
		&types.UserBadge{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type activityFixture struct {
	db      *gorm.DB
	svc     *activityService
	users   repos.UserRepo
	logs    repos.ActivityLogRepo
	badges  repos.UserBadgeRepo
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	db := openTestDB(t)
	log := newTestLogger()
	userRepo := repos.NewUserRepo(db, log)
	habitRepo := repos.NewHabitRepo(db, log)
	activityLogRepo := repos.NewActivityLogRepo(db, log)
	badgeRepo := repos.NewBadgeRepo(db, log)
	userBadgeRepo := repos.NewUserBadgeRepo(db, log)
	svc := NewActivityService(db, log, userRepo, habitRepo, activityLogRepo, badgeRepo, userBadgeRepo, nil).(*activityService)
	return &activityFixture{
		db:     db,
		svc:    svc,
		users:  userRepo,
		logs:   activityLogRepo,
		badges: userBadgeRepo,
	}
}

func (f *activityFixture) setNow(t *testing.T, value string) {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	f.svc.now = func() time.Time { return parsed }
}

func (f *activityFixture) createUser(t *testing.T, email string) *types.User {
	t.Helper()
	user := &types.User{Email: email, Name: "Test User", PasswordHash: "x"}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *activityFixture) createHabit(t *testing.T, name string, points int) *types.Habit {
	t.Helper()
	habit := &types.Habit{Name: name, PointsValue: points}
	if err := f.db.Create(habit).Error; err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return habit
}

func (f *activityFixture) createBadge(t *testing.T, name string, threshold int) *types.Badge {
	t.Helper()
	badge := &types.Badge{Name: name, PointsThreshold: threshold}
	if err := f.db.Create(badge).Error; err != nil {
		t.Fatalf("create badge: %v", err)
	}
	return badge
}

func (f *activityFixture) reloadUser(t *testing.T, userID uint) *types.User {
	t.Helper()
	var user types.User
	if err := f.db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}
