package services

import (
	"context"
	"testing"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/repos"
	"github.com/onmx/studio-backend/internal/repos/testutil"
)

func TestMediaServiceWebhookBindsRemoteID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	mediaRepo := repos.NewMediaRepo(tx, log)
	companyRepo := repos.NewCompanyRepo(tx, log)
	svc := NewMediaService(tx, log, mediaRepo, companyRepo, nil, nil, nil)

	base := context.Background()
	co := testutil.SeedCompany(t, base, tx, "mediaflow-co")

	// A direct-upload row: the transcoder has not assigned an asset yet, so
	// the only handle the first webhook carries is our row id as passthrough.
	pending := testutil.SeedMediaAsset(t, base, tx, co.ID, domain.MediaKindVideo, domain.MediaStatusWaiting)

	err := svc.HandleWebhook(base, "remote-abc", pending.ID.String(), "preparing", "")
	if err != nil {
		t.Fatalf("HandleWebhook by passthrough: %v", err)
	}
	row, err := mediaRepo.GetAny(dbctx.New(base), pending.ID)
	if err != nil || row == nil {
		t.Fatalf("reload asset: %v", err)
	}
	if row.RemoteID != "remote-abc" {
		t.Fatalf("remote id not bound, got %q", row.RemoteID)
	}
	if row.Status != domain.MediaStatusPreparing {
		t.Fatalf("status = %q, want preparing", row.Status)
	}

	// Later events match by the bound remote id; passthrough is ignored.
	if err := svc.HandleWebhook(base, "remote-abc", "", "ready", "pb-1"); err != nil {
		t.Fatalf("HandleWebhook by remote id: %v", err)
	}
	row, err = mediaRepo.GetByRemoteID(dbctx.New(base), "remote-abc")
	if err != nil || row == nil {
		t.Fatalf("reload by remote id: %v", err)
	}
	if row.Status != domain.MediaStatusReady || row.PlaybackID != "pb-1" {
		t.Fatalf("status=%q playback=%q, want ready/pb-1", row.Status, row.PlaybackID)
	}
	if row.LastSyncedAt == nil {
		t.Fatal("last_synced_at not stamped")
	}

	// An already-bound row never rebinds to a different remote asset, and a
	// second upload reusing the passthrough cannot clobber its state.
	if err := svc.HandleWebhook(base, "remote-other", pending.ID.String(), "errored", ""); err != nil {
		t.Fatalf("HandleWebhook foreign remote id: %v", err)
	}
	row, err = mediaRepo.GetAny(dbctx.New(base), pending.ID)
	if err != nil || row == nil {
		t.Fatalf("reload asset: %v", err)
	}
	if row.RemoteID != "remote-abc" {
		t.Fatalf("remote id rebound to %q", row.RemoteID)
	}
	if row.Status != domain.MediaStatusReady {
		t.Fatalf("foreign event changed status to %q", row.Status)
	}

	// Events for assets we never created are swallowed.
	if err := svc.HandleWebhook(base, "remote-unknown", "not-a-uuid", "ready", ""); err != nil {
		t.Fatalf("HandleWebhook unknown asset: %v", err)
	}
}
