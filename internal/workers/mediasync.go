package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/envutil"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
	"github.com/onmx/studio-backend/internal/services"
)

// staleAfter is how long a pending video may go without a transcoder check
// before the reconcile pass picks it up again. Webhooks normally resolve
// assets long before this; the worker exists for the ones that slip through.
const staleAfter = 2 * time.Minute

// MediaSyncWorker periodically re-checks videos that are still waiting on the
// transcoder. It is the fallback path for missed webhooks: every tick it lists
// stale pending rows and refreshes each one against the remote API.
type MediaSyncWorker struct {
	log       *logger.Logger
	mediaRepo repos.MediaRepo
	media     services.MediaService
	schedule  string
	cron      *cron.Cron
}

func NewMediaSyncWorker(baseLog *logger.Logger, mediaRepo repos.MediaRepo, media services.MediaService) *MediaSyncWorker {
	log := baseLog.With("component", "MediaSyncWorker")
	return &MediaSyncWorker{
		log:       log,
		mediaRepo: mediaRepo,
		media:     media,
		schedule:  envutil.GetEnv("MEDIA_SYNC_CRON", "@every 1m", log),
	}
}

// Start registers the reconcile pass on its cron schedule and launches the
// scheduler. It returns an error only when the schedule expression is invalid.
func (w *MediaSyncWorker) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.runOnce(ctx) }); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	w.log.Info("Media sync worker started", "schedule", w.schedule)

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits for an in-flight pass to finish.
func (w *MediaSyncWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	w.log.Info("Media sync worker stopped")
}

func (w *MediaSyncWorker) runOnce(ctx context.Context) {
	cutoff := time.Now().Add(-staleAfter)
	assets, err := w.mediaRepo.ListPendingVideos(dbctx.New(ctx), cutoff)
	if err != nil {
		w.log.Warn("List pending videos failed", "error", err)
		return
	}
	if len(assets) == 0 {
		return
	}

	w.log.Info("Reconciling pending videos", "count", len(assets))
	for _, asset := range assets {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.media.SyncAsset(ctx, asset); err != nil {
			w.log.Warn("Sync asset failed", "asset_id", asset.ID, "error", err)
		}
	}
}
