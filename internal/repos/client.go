package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type ClientRepo interface {
	Create(dbc dbctx.Context, row *domain.Client) (*domain.Client, error)
	GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.Client, error)
	ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Client, error)
	UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (r *clientRepo) Create(dbc dbctx.Context, row *domain.Client) (*domain.Client, error) {
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

func (r *clientRepo) GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.Client, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.Client
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

func (r *clientRepo) ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.Client, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Client
	err := t.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clientRepo) UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&domain.Client{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(updates).Error
}

func (r *clientRepo) SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.Client{}).Error
}
