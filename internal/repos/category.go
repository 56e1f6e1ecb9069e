package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, row *domain.CaseCategory) (*domain.CaseCategory, error)
	GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.CaseCategory, error)
	ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.CaseCategory, error)
	UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, companyID, id uuid.UUID) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(dbc dbctx.Context, row *domain.CaseCategory) (*domain.CaseCategory, error) {
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

func (r *categoryRepo) GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.CaseCategory, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.CaseCategory
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

func (r *categoryRepo) ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.CaseCategory, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.CaseCategory
	err := t.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&domain.CaseCategory{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(updates).Error
}

func (r *categoryRepo) Delete(dbc dbctx.Context, companyID, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.CaseCategory{}).Error
}
