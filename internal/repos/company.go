package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type CompanyRepo interface {
	Create(dbc dbctx.Context, row *domain.Company) (*domain.Company, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Company, error)
	GetBySlug(dbc dbctx.Context, slug string) (*domain.Company, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Company, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	Link(dbc dbctx.Context, row *domain.UserCompany) (*domain.UserCompany, error)
	GetRole(dbc dbctx.Context, userID, companyID uuid.UUID) (string, error)
	ListMembers(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.UserCompany, error)
}

type companyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
	return &companyRepo{db: db, log: baseLog.With("repo", "CompanyRepo")}
}

func (r *companyRepo) Create(dbc dbctx.Context, row *domain.Company) (*domain.Company, error) {
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

func (r *companyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Company, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out domain.Company
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *companyRepo) GetBySlug(dbc dbctx.Context, slug string) (*domain.Company, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.Company
	err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *companyRepo) ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*domain.Company, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Company
	err := t.WithContext(dbc.Ctx).
		Joins(`JOIN "user_company" ON "user_company"."company_id" = "company"."id"`).
		Where(`"user_company"."user_id" = ?`, userID).
		Order(`"company"."name" ASC`).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *companyRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Model(&domain.Company{}).Where("id = ?", id).Updates(updates).Error
}

func (r *companyRepo) Link(dbc dbctx.Context, row *domain.UserCompany) (*domain.UserCompany, error) {
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

func (r *companyRepo) GetRole(dbc dbctx.Context, userID, companyID uuid.UUID) (string, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out domain.UserCompany
	err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&out).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return out.Role, nil
}

func (r *companyRepo) ListMembers(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.UserCompany, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.UserCompany
	if err := t.WithContext(dbc.Ctx).Where("company_id = ?", companyID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
