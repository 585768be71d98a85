package services

import (
	"context"
	"testing"

	"github.com/yungbote/ecohabit-backend/internal/repos"
	"github.com/yungbote/ecohabit-backend/internal/types"
)

func TestLeaderboardTopRanksBySQL(t *testing.T) {
	db := openTestDB(t)
	log := newTestLogger()
	userRepo := repos.NewUserRepo(db, log)

	seed := []*types.User{
		{Email: "a@example.com", Name: "Alice", PasswordHash: "x", TotalPoints: 120},
		{Email: "b@example.com", Name: "Bob", PasswordHash: "x", TotalPoints: 300},
		{Email: "c@example.com", Name: "Carol", PasswordHash: "x", TotalPoints: 40},
	}
	for _, user := range seed {
		if err := db.Create(user).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	svc := NewLeaderboardService(db, log, userRepo, nil)
	entries, err := svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("entries=%d, want 3", len(entries))
	}
	wantOrder := []string{"Bob", "Alice", "Carol"}
	for i, want := range wantOrder {
		if entries[i].Name != want {
			t.Fatalf("rank %d=%s, want %s", i, entries[i].Name, want)
		}
	}
	if entries[0].TotalPoints != 300 {
		t.Fatalf("top score=%d, want 300", entries[0].TotalPoints)
	}
}

func TestLeaderboardTopHonorsLimit(t *testing.T) {
	db := openTestDB(t)
	log := newTestLogger()
	userRepo := repos.NewUserRepo(db, log)

	for i := 0; i < 15; i++ {
		user := &types.User{
			Email:        string(rune('a'+i)) + "@example.com",
			Name:         "User",
			PasswordHash: "x",
			TotalPoints:  i * 10,
		}
		if err := db.Create(user).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	svc := NewLeaderboardService(db, log, userRepo, nil)
	entries, err := svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("entries=%d, want 10", len(entries))
	}
	if entries[0].TotalPoints != 140 {
		t.Fatalf("top score=%d, want 140", entries[0].TotalPoints)
	}
}
