package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
	"github.com/yungbote/ecohabit-backend/internal/types"
)

func TestLogActivityFirstLogAwardsCrossedBadge(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Plant a tree", 50)
	fifty := f.createBadge(t, "Starter", 50)
	f.createBadge(t, "Centurion", 100)

	f.setNow(t, "2025-03-10 09:00")
	result, err := f.svc.LogActivity(ctx, user.ID, habit.ID, "first log")
	if err != nil {
		t.Fatalf("LogActivity: %v", err)
	}

	if result.PointsEarned != 50 {
		t.Fatalf("PointsEarned=%d, want 50", result.PointsEarned)
	}
	if result.TotalPoints != 50 {
		t.Fatalf("TotalPoints=%d, want 50", result.TotalPoints)
	}
	if result.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1", result.CurrentStreak)
	}
	if len(result.NewBadges) != 1 || result.NewBadges[0].ID != fifty.ID {
		t.Fatalf("NewBadges=%v, want exactly the 50-threshold badge", result.NewBadges)
	}
	if result.Log == nil || result.Log.ID == 0 {
		t.Fatalf("expected a persisted log entry, got %v", result.Log)
	}

	stored := f.reloadUser(t, user.ID)
	if stored.TotalPoints != 50 || stored.CurrentStreak != 1 {
		t.Fatalf("stored totals=%d/%d, want 50/1", stored.TotalPoints, stored.CurrentStreak)
	}
	if stored.LastLoggedDate == nil {
		t.Fatalf("LastLoggedDate not set")
	}
	if got := time.Time(*stored.LastLoggedDate).UTC().Format("2006-01-02"); got != "2025-03-10" {
		t.Fatalf("LastLoggedDate=%s, want 2025-03-10", got)
	}
}

func TestLogActivityNextDayIncrementsStreakAndCrossesThreshold(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	fifty := f.createHabit(t, "Plant a tree", 50)
	sixty := f.createHabit(t, "Community cleanup", 60)
	f.createBadge(t, "Starter", 50)
	hundred := f.createBadge(t, "Centurion", 100)

	f.setNow(t, "2025-03-10 09:00")
	if _, err := f.svc.LogActivity(ctx, user.ID, fifty.ID, ""); err != nil {
		t.Fatalf("day one: %v", err)
	}

	f.setNow(t, "2025-03-11 21:00")
	result, err := f.svc.LogActivity(ctx, user.ID, sixty.ID, "")
	if err != nil {
		t.Fatalf("day two: %v", err)
	}

	if result.TotalPoints != 110 {
		t.Fatalf("TotalPoints=%d, want 110", result.TotalPoints)
	}
	if result.CurrentStreak != 2 {
		t.Fatalf("CurrentStreak=%d, want 2", result.CurrentStreak)
	}
	if len(result.NewBadges) != 1 || result.NewBadges[0].ID != hundred.ID {
		t.Fatalf("NewBadges=%v, want exactly the 100-threshold badge", result.NewBadges)
	}
}

func TestLogActivityGapResetsStreakWithoutNewBadges(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	fifty := f.createHabit(t, "Plant a tree", 50)
	sixty := f.createHabit(t, "Community cleanup", 60)
	ten := f.createHabit(t, "Reduce water usage", 10)
	f.createBadge(t, "Starter", 50)
	f.createBadge(t, "Centurion", 100)

	f.setNow(t, "2025-03-10 09:00")
	if _, err := f.svc.LogActivity(ctx, user.ID, fifty.ID, ""); err != nil {
		t.Fatalf("day one: %v", err)
	}
	f.setNow(t, "2025-03-11 09:00")
	if _, err := f.svc.LogActivity(ctx, user.ID, sixty.ID, ""); err != nil {
		t.Fatalf("day two: %v", err)
	}

	// Two skipped days.
	f.setNow(t, "2025-03-14 09:00")
	result, err := f.svc.LogActivity(ctx, user.ID, ten.ID, "")
	if err != nil {
		t.Fatalf("after gap: %v", err)
	}

	if result.TotalPoints != 120 {
		t.Fatalf("TotalPoints=%d, want 120", result.TotalPoints)
	}
	if result.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1 after reset", result.CurrentStreak)
	}
	if len(result.NewBadges) != 0 {
		t.Fatalf("NewBadges=%v, want none", result.NewBadges)
	}
}

func TestLogActivitySameDayKeepsStreak(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Cycle to work", 20)

	f.setNow(t, "2025-03-10 08:00")
	if _, err := f.svc.LogActivity(ctx, user.ID, habit.ID, ""); err != nil {
		t.Fatalf("first: %v", err)
	}
	f.setNow(t, "2025-03-10 19:00")
	result, err := f.svc.LogActivity(ctx, user.ID, habit.ID, "")
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if result.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1", result.CurrentStreak)
	}
	if result.TotalPoints != 40 {
		t.Fatalf("TotalPoints=%d, want 40", result.TotalPoints)
	}

	count, err := f.logs.CountByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 2 {
		t.Fatalf("log count=%d, want 2", count)
	}
}

func TestLogActivityPointsConservation(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	values := []int{50, 20, 15, 10, 12}
	habits := make([]*types.Habit, 0, len(values))
	for _, v := range values {
		habits = append(habits, f.createHabit(t, "Habit", v))
	}

	f.setNow(t, "2025-03-10 09:00")
	want := 0
	for _, habit := range habits {
		if _, err := f.svc.LogActivity(ctx, user.ID, habit.ID, ""); err != nil {
			t.Fatalf("LogActivity: %v", err)
		}
		want += habit.PointsValue
	}

	stored := f.reloadUser(t, user.ID)
	if stored.TotalPoints != want {
		t.Fatalf("TotalPoints=%d, want %d", stored.TotalPoints, want)
	}
	sum, err := f.logs.SumPointsByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("sum points: %v", err)
	}
	if sum != want {
		t.Fatalf("ledger sum=%d, want %d", sum, want)
	}
}

func TestLogActivityNeverAwardsBadgeTwice(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Plant a tree", 50)
	badge := f.createBadge(t, "Starter", 50)

	f.setNow(t, "2025-03-10 09:00")
	first, err := f.svc.LogActivity(ctx, user.ID, habit.ID, "")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if len(first.NewBadges) != 1 {
		t.Fatalf("first call NewBadges=%d, want 1", len(first.NewBadges))
	}

	for i := 0; i < 3; i++ {
		again, aErr := f.svc.LogActivity(ctx, user.ID, habit.ID, "")
		if aErr != nil {
			t.Fatalf("repeat %d: %v", i, aErr)
		}
		if len(again.NewBadges) != 0 {
			t.Fatalf("repeat %d NewBadges=%v, want none", i, again.NewBadges)
		}
	}

	exists, err := f.badges.ExistsFor(ctx, nil, user.ID, badge.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("badge award missing")
	}
	count, err := f.badges.CountByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count awards: %v", err)
	}
	if count != 1 {
		t.Fatalf("award count=%d, want exactly 1", count)
	}
}

func TestLogActivityUnknownHabitAndUser(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Plant a tree", 50)

	if _, err := f.svc.LogActivity(ctx, user.ID, habit.ID+999, ""); !errors.Is(err, pkgerrors.ErrHabitNotFound) {
		t.Fatalf("err=%v, want ErrHabitNotFound", err)
	}
	if _, err := f.svc.LogActivity(ctx, user.ID+999, habit.ID, ""); !errors.Is(err, pkgerrors.ErrUserNotFound) {
		t.Fatalf("err=%v, want ErrUserNotFound", err)
	}

	count, err := f.logs.CountByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("log count=%d, want 0 after failed calls", count)
	}
}

func TestLogActivityRollsBackWhenAwardFails(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Plant a tree", 50)
	f.createBadge(t, "Starter", 50)

	// Breaking the award table mid-flight forces the transaction to fail
	// after the log insert; nothing from the call may stick.
	if err := f.db.Migrator().DropTable(&types.UserBadge{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	f.setNow(t, "2025-03-10 09:00")
	if _, err := f.svc.LogActivity(ctx, user.ID, habit.ID, ""); err == nil {
		t.Fatalf("expected failure once award table is gone")
	}

	count, err := f.logs.CountByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("log count=%d, want 0 after rollback", count)
	}
	stored := f.reloadUser(t, user.ID)
	if stored.TotalPoints != 0 || stored.CurrentStreak != 0 || stored.LastLoggedDate != nil {
		t.Fatalf("user mutated despite rollback: %+v", stored)
	}
}

func TestLogActivityConcurrentSameUser(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Reduce water usage", 10)
	f.setNow(t, "2025-03-10 09:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = f.svc.LogActivity(ctx, user.ID, habit.ID, "")
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	stored := f.reloadUser(t, user.ID)
	if stored.TotalPoints != 20 {
		t.Fatalf("TotalPoints=%d, want 20 (no lost update)", stored.TotalPoints)
	}
	count, err := f.logs.CountByUser(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if count != 2 {
		t.Fatalf("log count=%d, want 2", count)
	}
}

func TestLogActivityZeroValueHabit(t *testing.T) {
	f := newActivityFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice@example.com")
	habit := f.createHabit(t, "Unpriced habit", 0)

	f.setNow(t, "2025-03-10 09:00")
	result, err := f.svc.LogActivity(ctx, user.ID, habit.ID, "")
	if err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	if result.PointsEarned != 0 || result.TotalPoints != 0 {
		t.Fatalf("earned=%d total=%d, want 0/0", result.PointsEarned, result.TotalPoints)
	}
	if result.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak=%d, want 1", result.CurrentStreak)
	}
}
