package repos

import (
	"context"
	"testing"
	"time"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestUserTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "usertokenrepo@example.com")

	fresh := &domain.UserToken{
		UserID:       u.ID,
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	if _, err := repo.Create(dbc, fresh); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale := &domain.UserToken{
		UserID:       u.ID,
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	if _, err := repo.Create(dbc, stale); err != nil {
		t.Fatalf("Create stale: %v", err)
	}

	if got, err := repo.GetByRefreshToken(dbc, "refresh-1"); err != nil || got == nil || got.UserID != u.ID {
		t.Fatalf("GetByRefreshToken: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByRefreshToken(dbc, "missing"); err != nil || got != nil {
		t.Fatalf("GetByRefreshToken missing: got=%v err=%v", got, err)
	}

	if n, err := repo.DeleteExpired(dbc, time.Now()); err != nil || n != 1 {
		t.Fatalf("DeleteExpired: n=%d err=%v", n, err)
	}
	if got, _ := repo.GetByRefreshToken(dbc, "refresh-2"); got != nil {
		t.Fatal("expired token survived DeleteExpired")
	}

	if err := repo.DeleteByRefreshToken(dbc, "refresh-1"); err != nil {
		t.Fatalf("DeleteByRefreshToken: %v", err)
	}
	if got, _ := repo.GetByRefreshToken(dbc, "refresh-1"); got != nil {
		t.Fatal("token survived DeleteByRefreshToken")
	}

	if _, err := repo.Create(dbc, &domain.UserToken{
		UserID:       u.ID,
		AccessToken:  "access-3",
		RefreshToken: "refresh-3",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("Create third: %v", err)
	}
	if err := repo.DeleteByUserID(dbc, u.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if got, _ := repo.GetByRefreshToken(dbc, "refresh-3"); got != nil {
		t.Fatal("token survived DeleteByUserID")
	}
}
