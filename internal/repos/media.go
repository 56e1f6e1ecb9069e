package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type MediaRepo interface {
	Create(dbc dbctx.Context, row *domain.MediaAsset) (*domain.MediaAsset, error)
	GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.MediaAsset, error)
	GetByRemoteID(dbc dbctx.Context, remoteID string) (*domain.MediaAsset, error)
	// GetAny looks a row up by primary key with no tenant filter. Webhook
	// binding is the only caller; tenant-facing reads go through GetByID.
	GetAny(dbc dbctx.Context, id uuid.UUID) (*domain.MediaAsset, error)
	ListByCompany(dbc dbctx.Context, companyID uuid.UUID, kind string) ([]*domain.MediaAsset, error)
	ListPendingVideos(dbc dbctx.Context, notSyncedSince time.Time) ([]*domain.MediaAsset, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{db: db, log: baseLog.With("repo", "MediaRepo")}
}

func (r *mediaRepo) Create(dbc dbctx.Context, row *domain.MediaAsset) (*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *mediaRepo) GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.MediaAsset
	err := t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *mediaRepo) GetAny(dbc dbctx.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.MediaAsset
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *mediaRepo) GetByRemoteID(dbc dbctx.Context, remoteID string) (*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if remoteID == "" {
		return nil, nil
	}
	var out domain.MediaAsset
	err := t.WithContext(dbc.Ctx).Where("remote_id = ?", remoteID).First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *mediaRepo) ListByCompany(dbc dbctx.Context, companyID uuid.UUID, kind string) ([]*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Where("company_id = ?", companyID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []*domain.MediaAsset
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingVideos finds videos still waiting on the transcoder that have
// not been re-checked since the cutoff. The sync worker feeds on this.
func (r *mediaRepo) ListPendingVideos(dbc dbctx.Context, notSyncedSince time.Time) ([]*domain.MediaAsset, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.MediaAsset
	err := t.WithContext(dbc.Ctx).
		Where("kind = ?", domain.MediaKindVideo).
		Where("status IN ?", []string{domain.MediaStatusWaiting, domain.MediaStatusPreparing}).
		Where("last_synced_at IS NULL OR last_synced_at < ?", notSyncedSince).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mediaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&domain.MediaAsset{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *mediaRepo) SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.MediaAsset{}).Error
}
