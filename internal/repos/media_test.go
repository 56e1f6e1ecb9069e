package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestMediaRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewMediaRepo(db, testutil.Logger(t))

	co := testutil.SeedCompany(t, ctx, tx, "mediarepo-co")

	img, err := repo.Create(dbc, &domain.MediaAsset{
		CompanyID: co.ID,
		Kind:      domain.MediaKindImage,
		Name:      "hero.jpg",
		Status:    domain.MediaStatusReady,
	})
	if err != nil {
		t.Fatalf("Create image: %v", err)
	}
	vid, err := repo.Create(dbc, &domain.MediaAsset{
		CompanyID: co.ID,
		Kind:      domain.MediaKindVideo,
		Name:      "reel.mp4",
		Status:    domain.MediaStatusWaiting,
		RemoteID:  "mediarepo-remote-1",
	})
	if err != nil {
		t.Fatalf("Create video: %v", err)
	}

	if got, err := repo.GetByID(dbc, co.ID, img.ID); err != nil || got == nil || got.Name != "hero.jpg" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByRemoteID(dbc, "mediarepo-remote-1"); err != nil || got == nil || got.ID != vid.ID {
		t.Fatalf("GetByRemoteID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByRemoteID(dbc, "unknown"); err != nil || got != nil {
		t.Fatalf("GetByRemoteID unknown: got=%v err=%v", got, err)
	}

	if rows, err := repo.ListByCompany(dbc, co.ID, ""); err != nil || len(rows) != 2 {
		t.Fatalf("ListByCompany all: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListByCompany(dbc, co.ID, domain.MediaKindVideo); err != nil || len(rows) != 1 || rows[0].ID != vid.ID {
		t.Fatalf("ListByCompany videos: err=%v len=%d", err, len(rows))
	}

	// Never-synced pending videos are always due.
	pending, err := repo.ListPendingVideos(dbc, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ListPendingVideos: %v", err)
	}
	if !containsAsset(pending, vid.ID) {
		t.Fatal("never-synced pending video not listed")
	}

	// A recent sync keeps the row off the pending list until the cutoff passes.
	if err := repo.UpdateFields(dbc, vid.ID, map[string]interface{}{"last_synced_at": time.Now()}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if pending, err = repo.ListPendingVideos(dbc, time.Now().Add(-time.Minute)); err != nil || containsAsset(pending, vid.ID) {
		t.Fatalf("recently synced video listed as pending: err=%v", err)
	}
	if pending, err = repo.ListPendingVideos(dbc, time.Now().Add(time.Minute)); err != nil || !containsAsset(pending, vid.ID) {
		t.Fatalf("stale video missing from pending list: err=%v", err)
	}

	// Ready videos are never pending.
	if err := repo.UpdateFields(dbc, vid.ID, map[string]interface{}{"status": domain.MediaStatusReady}); err != nil {
		t.Fatalf("UpdateFields status: %v", err)
	}
	if pending, err = repo.ListPendingVideos(dbc, time.Now().Add(time.Minute)); err != nil || containsAsset(pending, vid.ID) {
		t.Fatalf("ready video listed as pending: err=%v", err)
	}

	if err := repo.SoftDelete(dbc, co.ID, img.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if got, err := repo.GetByID(dbc, co.ID, img.ID); err != nil || got != nil {
		t.Fatalf("after SoftDelete GetByID: got=%v err=%v", got, err)
	}
}

func containsAsset(rows []*domain.MediaAsset, id uuid.UUID) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}
