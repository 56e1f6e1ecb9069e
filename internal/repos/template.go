package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type TemplateRepo interface {
	Create(dbc dbctx.Context, row *domain.CaseTemplate) (*domain.CaseTemplate, error)
	GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.CaseTemplate, error)
	ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.CaseTemplate, error)
	SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) Create(dbc dbctx.Context, row *domain.CaseTemplate) (*domain.CaseTemplate, error) {
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

func (r *templateRepo) GetByID(dbc dbctx.Context, companyID, id uuid.UUID) (*domain.CaseTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.CaseTemplate
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

func (r *templateRepo) ListByCompany(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.CaseTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.CaseTemplate
	err := t.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *templateRepo) SoftDelete(dbc dbctx.Context, companyID, id uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.CaseTemplate{}).Error
}
