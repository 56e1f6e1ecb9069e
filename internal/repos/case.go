package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

// CaseFilter narrows a tenant's case listing. Zero values mean "no filter".
type CaseFilter struct {
	Status     string
	ClientID   *uuid.UUID
	CategoryID *uuid.UUID
	Search     string
}

type CaseRepo interface {
	Create(dbc dbctx.Context, row *domain.Case) (*domain.Case, error)
	GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.Case, error)
	GetBySlug(dbc dbctx.Context, companyID uuid.UUID, slug string) (*domain.Case, error)
	List(dbc dbctx.Context, companyID uuid.UUID, filter CaseFilter) ([]*domain.Case, error)
	Update(dbc dbctx.Context, row *domain.Case) error
	UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error
	SlugTaken(dbc dbctx.Context, companyID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
}

type caseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseRepo(db *gorm.DB, baseLog *logger.Logger) CaseRepo {
	return &caseRepo{db: db, log: baseLog.With("repo", "CaseRepo")}
}

func (r *caseRepo) Create(dbc dbctx.Context, row *domain.Case) (*domain.Case, error) {
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

func (r *caseRepo) GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.Case, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out domain.Case
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

func (r *caseRepo) GetBySlug(dbc dbctx.Context, companyID uuid.UUID, slug string) (*domain.Case, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.Case
	err := t.WithContext(dbc.Ctx).
		Where("company_id = ? AND slug = ?", companyID, slug).
		First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *caseRepo) List(dbc dbctx.Context, companyID uuid.UUID, filter CaseFilter) ([]*domain.Case, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	var out []*domain.Case
	if err := q.Order("updated_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *caseRepo) Update(dbc dbctx.Context, row *domain.Case) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Save(row).Error
}

func (r *caseRepo) UpdateFields(dbc dbctx.Context, companyID, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&domain.Case{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(updates).Error
}

func (r *caseRepo) SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.Case{}).Error
}

func (r *caseRepo) SlugTaken(dbc dbctx.Context, companyID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).
		Model(&domain.Case{}).
		Where("company_id = ? AND slug = ?", companyID, slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
