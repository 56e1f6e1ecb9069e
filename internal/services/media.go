package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/clients/mux"
	"github.com/onmx/studio-backend/internal/clients/redisbus"
	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

// syncThrottle is the minimum gap between manual re-syncs of the same asset;
// the webhook is the primary signal and polling is the fallback.
const syncThrottle = 30 * time.Second

const maxBatchUploads = 4

// UploadInput is one file of a batch upload.
type UploadInput struct {
	Filename    string
	ContentType string
	SizeBytes   int64
	File        io.Reader
}

// UploadResult tallies a batch: failed files do not abort the others.
type UploadResult struct {
	Uploaded []*domain.MediaAsset `json:"uploaded"`
	Failed   []UploadFailure      `json:"failed"`
}

type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// VideoUpload is the handshake for a browser-direct video upload: the client
// PUTs the file at UploadURL while the library row tracks transcoder state.
type VideoUpload struct {
	Asset     *domain.MediaAsset `json:"asset"`
	UploadURL string             `json:"upload_url"`
}

type MediaService interface {
	List(ctx context.Context, companyID uuid.UUID, kind string) ([]*domain.MediaAsset, error)
	UploadBatch(ctx context.Context, companyID uuid.UUID, files []UploadInput) (*UploadResult, error)
	CreateVideoUpload(ctx context.Context, companyID uuid.UUID, name string) (*VideoUpload, error)
	Sync(ctx context.Context, companyID, id uuid.UUID) (*domain.MediaAsset, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// HandleWebhook ingests a transcoder event. Rows are matched by remote
	// asset id, falling back to the passthrough (our row id) for the first
	// event of a direct upload, which also binds remote_id. Unknown events
	// are ignored so replays and foreign assets never error.
	HandleWebhook(ctx context.Context, remoteID, passthrough, status, playbackID string) error

	// SyncAsset refreshes one row against the transcoder without tenant
	// checks; the reconcile worker calls this directly.
	SyncAsset(ctx context.Context, asset *domain.MediaAsset) (*domain.MediaAsset, error)
}

type mediaService struct {
	db          *gorm.DB
	log         *logger.Logger
	mediaRepo   repos.MediaRepo
	companyRepo repos.CompanyRepo
	bucket      BucketService
	transcoder  mux.Client
	bus         redisbus.MediaBus
}

func NewMediaService(
	db *gorm.DB,
	log *logger.Logger,
	mediaRepo repos.MediaRepo,
	companyRepo repos.CompanyRepo,
	bucket BucketService,
	transcoder mux.Client,
	bus redisbus.MediaBus,
) MediaService {
	return &mediaService{
		db:          db,
		log:         log.With("service", "MediaService"),
		mediaRepo:   mediaRepo,
		companyRepo: companyRepo,
		bucket:      bucket,
		transcoder:  transcoder,
		bus:         bus,
	}
}

func (ms *mediaService) List(ctx context.Context, companyID uuid.UUID, kind string) ([]*domain.MediaAsset, error) {
	if _, err := requireMember(ctx, ms.companyRepo, companyID); err != nil {
		return nil, err
	}
	return ms.mediaRepo.ListByCompany(dbctx.New(ctx), companyID, kind)
}

func (ms *mediaService) UploadBatch(ctx context.Context, companyID uuid.UUID, files []UploadInput) (*UploadResult, error) {
	if _, err := requireMember(ctx, ms.companyRepo, companyID); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return &UploadResult{}, nil
	}

	var mu sync.Mutex
	result := &UploadResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchUploads)
	for _, f := range files {
		f := f
		g.Go(func() error {
			asset, err := ms.uploadOne(gctx, companyID, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ms.log.Warn("Media upload failed", "filename", f.Filename, "error", err)
				result.Failed = append(result.Failed, UploadFailure{Filename: f.Filename, Error: err.Error()})
				return nil
			}
			result.Uploaded = append(result.Uploaded, asset)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ms.log.Info("Media batch processed", "uploaded", len(result.Uploaded), "failed", len(result.Failed))
	return result, nil
}

func (ms *mediaService) uploadOne(ctx context.Context, companyID uuid.UUID, f UploadInput) (*domain.MediaAsset, error) {
	key := ms.bucket.ObjectKey(companyID, PurposeMedia, f.Filename)
	if err := ms.bucket.UploadFile(ctx, key, f.ContentType, f.File); err != nil {
		return nil, err
	}
	asset := &domain.MediaAsset{
		CompanyID:  companyID,
		Kind:       kindFromMime(f.ContentType),
		Name:       f.Filename,
		MimeType:   f.ContentType,
		SizeBytes:  f.SizeBytes,
		StorageKey: key,
		URL:        ms.bucket.GetPublicURL(key),
		Status:     domain.MediaStatusReady,
	}
	if _, err := ms.mediaRepo.Create(dbctx.New(ctx), asset); err != nil {
		return nil, fmt.Errorf("create media row: %w", err)
	}
	return asset, nil
}

func (ms *mediaService) CreateVideoUpload(ctx context.Context, companyID uuid.UUID, name string) (*VideoUpload, error) {
	if _, err := requireMember(ctx, ms.companyRepo, companyID); err != nil {
		return nil, err
	}
	if ms.transcoder == nil {
		return nil, fmt.Errorf("video transcoder not configured")
	}

	asset := &domain.MediaAsset{
		CompanyID: companyID,
		Kind:      domain.MediaKindVideo,
		Name:      name,
		Status:    domain.MediaStatusWaiting,
	}
	if _, err := ms.mediaRepo.Create(dbctx.New(ctx), asset); err != nil {
		return nil, fmt.Errorf("create media row: %w", err)
	}

	upload, err := ms.transcoder.CreateDirectUpload(ctx, asset.ID.String())
	if err != nil {
		_ = ms.mediaRepo.UpdateFields(dbctx.New(ctx), asset.ID, map[string]interface{}{
			"status": domain.MediaStatusErrored,
		})
		return nil, fmt.Errorf("create direct upload: %w", err)
	}
	if upload.AssetID != "" {
		if err := ms.mediaRepo.UpdateFields(dbctx.New(ctx), asset.ID, map[string]interface{}{
			"remote_id": upload.AssetID,
		}); err != nil {
			return nil, fmt.Errorf("store remote id: %w", err)
		}
		asset.RemoteID = upload.AssetID
	}
	return &VideoUpload{Asset: asset, UploadURL: upload.URL}, nil
}

func (ms *mediaService) Sync(ctx context.Context, companyID, id uuid.UUID) (*domain.MediaAsset, error) {
	if _, err := requireMember(ctx, ms.companyRepo, companyID); err != nil {
		return nil, err
	}
	asset, err := ms.mediaRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("media asset %s not found", id)
	}
	if asset.LastSyncedAt != nil && time.Since(*asset.LastSyncedAt) < syncThrottle {
		return asset, nil
	}
	return ms.SyncAsset(ctx, asset)
}

func (ms *mediaService) SyncAsset(ctx context.Context, asset *domain.MediaAsset) (*domain.MediaAsset, error) {
	if asset.Kind != domain.MediaKindVideo || asset.RemoteID == "" {
		return asset, nil
	}
	if ms.transcoder == nil {
		return nil, fmt.Errorf("video transcoder not configured")
	}

	remote, err := ms.transcoder.GetAsset(ctx, asset.RemoteID)
	if err != nil {
		return nil, fmt.Errorf("fetch remote asset: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{"last_synced_at": now}
	status := statusFromRemote(remote.Status)
	if status != "" && status != asset.Status {
		updates["status"] = status
		asset.Status = status
	}
	if len(remote.PlaybackIDs) > 0 && remote.PlaybackIDs[0].ID != asset.PlaybackID {
		updates["playback_id"] = remote.PlaybackIDs[0].ID
		asset.PlaybackID = remote.PlaybackIDs[0].ID
	}
	asset.LastSyncedAt = &now

	if err := ms.mediaRepo.UpdateFields(dbctx.New(ctx), asset.ID, updates); err != nil {
		return nil, fmt.Errorf("store sync result: %w", err)
	}
	ms.publishEvent(ctx, asset)
	return asset, nil
}

func (ms *mediaService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := requireMember(ctx, ms.companyRepo, companyID); err != nil {
		return err
	}
	asset, err := ms.mediaRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return nil
	}
	if asset.StorageKey != "" {
		if err := ms.bucket.DeleteFile(ctx, asset.StorageKey); err != nil {
			ms.log.Warn("Failed to delete storage object", "storage_key", asset.StorageKey, "error", err)
		}
	}
	return ms.mediaRepo.SoftDelete(dbctx.New(ctx), companyID, id)
}

func (ms *mediaService) HandleWebhook(ctx context.Context, remoteID, passthrough, status, playbackID string) error {
	asset, err := ms.mediaRepo.GetByRemoteID(dbctx.New(ctx), remoteID)
	if err != nil {
		return fmt.Errorf("lookup by remote id: %w", err)
	}
	if asset == nil {
		asset, err = ms.lookupByPassthrough(ctx, passthrough)
		if err != nil {
			return err
		}
		// A row already bound to another remote asset stays bound; a second
		// upload reusing the passthrough does not get to clobber it.
		if asset != nil && asset.RemoteID != "" && asset.RemoteID != remoteID {
			ms.log.Debug("Webhook passthrough points at a bound asset", "remote_id", remoteID, "asset_id", asset.ID)
			return nil
		}
	}
	if asset == nil {
		ms.log.Debug("Webhook for unknown remote asset", "remote_id", remoteID)
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{"last_synced_at": now}
	if remoteID != "" && asset.RemoteID == "" {
		updates["remote_id"] = remoteID
		asset.RemoteID = remoteID
	}
	if s := statusFromRemote(status); s != "" {
		updates["status"] = s
		asset.Status = s
	}
	if playbackID != "" {
		updates["playback_id"] = playbackID
		asset.PlaybackID = playbackID
	}
	if err := ms.mediaRepo.UpdateFields(dbctx.New(ctx), asset.ID, updates); err != nil {
		return fmt.Errorf("store webhook result: %w", err)
	}
	ms.publishEvent(ctx, asset)
	return nil
}

// lookupByPassthrough resolves the first event of a direct upload, which
// arrives before we know the remote asset id. The passthrough carries our
// row id; non-uuid or unmatched values mean the event is not ours.
func (ms *mediaService) lookupByPassthrough(ctx context.Context, passthrough string) (*domain.MediaAsset, error) {
	if passthrough == "" {
		return nil, nil
	}
	id, err := uuid.Parse(passthrough)
	if err != nil {
		return nil, nil
	}
	asset, err := ms.mediaRepo.GetAny(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("lookup by passthrough: %w", err)
	}
	return asset, nil
}

func (ms *mediaService) publishEvent(ctx context.Context, asset *domain.MediaAsset) {
	if ms.bus == nil {
		return
	}
	evt := redisbus.MediaEvent{
		AssetID:    asset.ID,
		CompanyID:  asset.CompanyID,
		Status:     asset.Status,
		PlaybackID: asset.PlaybackID,
		At:         time.Now(),
	}
	if err := ms.bus.Publish(ctx, evt); err != nil {
		ms.log.Warn("Failed to publish media event", "asset_id", asset.ID, "error", err)
	}
}

func kindFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return domain.MediaKindImage
	case strings.HasPrefix(mimeType, "video/"):
		return domain.MediaKindVideo
	default:
		return domain.MediaKindFile
	}
}

func statusFromRemote(remote string) string {
	switch remote {
	case "preparing":
		return domain.MediaStatusPreparing
	case "ready":
		return domain.MediaStatusReady
	case "errored":
		return domain.MediaStatusErrored
	default:
		return ""
	}
}
