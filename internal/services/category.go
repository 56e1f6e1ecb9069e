package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

type CategoryService interface {
	Create(ctx context.Context, companyID uuid.UUID, name string, sortOrder int) (*domain.CaseCategory, error)
	List(ctx context.Context, companyID uuid.UUID) ([]*domain.CaseCategory, error)
	Update(ctx context.Context, companyID, id uuid.UUID, name string, sortOrder int) (*domain.CaseCategory, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	companyRepo  repos.CompanyRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo, companyRepo repos.CompanyRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          log.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
		companyRepo:  companyRepo,
	}
}

func (cs *categoryService) Create(ctx context.Context, companyID uuid.UUID, name string, sortOrder int) (*domain.CaseCategory, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name required")
	}
	row := &domain.CaseCategory{CompanyID: companyID, Name: name, SortOrder: sortOrder}
	if _, err := cs.categoryRepo.Create(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return row, nil
}

func (cs *categoryService) List(ctx context.Context, companyID uuid.UUID) ([]*domain.CaseCategory, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	return cs.categoryRepo.ListByCompany(dbctx.New(ctx), companyID)
}

func (cs *categoryService) Update(ctx context.Context, companyID, id uuid.UUID, name string, sortOrder int) (*domain.CaseCategory, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	row, err := cs.categoryRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("category %s not found", id)
	}
	updates := map[string]interface{}{"sort_order": sortOrder}
	row.SortOrder = sortOrder
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
		row.Name = name
	}
	if err := cs.categoryRepo.UpdateFields(dbctx.New(ctx), companyID, id, updates); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return row, nil
}

func (cs *categoryService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return err
	}
	return cs.categoryRepo.Delete(dbctx.New(ctx), companyID, id)
}
