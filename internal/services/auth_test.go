package services

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
	"github.com/yungbote/ecohabit-backend/internal/repos"
	"github.com/yungbote/ecohabit-backend/internal/requestdata"
	"github.com/yungbote/ecohabit-backend/internal/types"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	db := openTestDB(t)
	log := newTestLogger()
	userRepo := repos.NewUserRepo(db, log)
	return NewAuthService(db, log, userRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user := &types.User{Email: "Alice.Green@Example.com", Name: "Alice Green"}
	if err := svc.RegisterUser(ctx, user, "password123"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("user not persisted")
	}
	if user.PasswordHash == "" || user.PasswordHash == "password123" {
		t.Fatalf("password stored unhashed")
	}

	// Email is normalized at registration, so login with lowercase works.
	access, refresh, err := svc.LoginUser(ctx, "alice.green@example.com", "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens, got %q / %q", access, refresh)
	}

	authedCtx, cErr := svc.SetContextFromToken(ctx, access)
	if cErr != nil {
		t.Fatalf("SetContextFromToken: %v", cErr)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data=%+v, want user %d", rd, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	first := &types.User{Email: "alice@example.com", Name: "Alice"}
	if err := svc.RegisterUser(ctx, first, "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	second := &types.User{Email: "alice@example.com", Name: "Other Alice"}
	if err := svc.RegisterUser(ctx, second, "password456"); !errors.Is(err, pkgerrors.ErrEmailInUse) {
		t.Fatalf("err=%v, want ErrEmailInUse", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user := &types.User{Email: "alice@example.com", Name: "Alice"}
	if err := svc.RegisterUser(ctx, user, "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.LoginUser(ctx, "alice@example.com", "wrong"); !errors.Is(err, pkgerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password err=%v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.LoginUser(ctx, "nobody@example.com", "password123"); !errors.Is(err, pkgerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email err=%v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user := &types.User{Email: "alice@example.com", Name: "Alice"}
	if err := svc.RegisterUser(ctx, user, "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	access, refresh, err := svc.LoginUser(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := svc.RefreshTokens(ctx, access); err == nil {
		t.Fatalf("refresh accepted an access token")
	}
	newAccess, newRefresh, err := svc.RefreshTokens(ctx, refresh)
	if err != nil {
		t.Fatalf("RefreshTokens: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected rotated tokens")
	}
}
