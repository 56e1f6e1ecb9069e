package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/ctxutil"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

type CompanyService interface {
	// Create makes a new tenant and links the acting user as its admin.
	Create(ctx context.Context, name, slug, accentColor string) (*domain.Company, error)
	ListMine(ctx context.Context) ([]*domain.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Company, error)
}

type companyService struct {
	db          *gorm.DB
	log         *logger.Logger
	companyRepo repos.CompanyRepo
}

func NewCompanyService(db *gorm.DB, log *logger.Logger, companyRepo repos.CompanyRepo) CompanyService {
	return &companyService{
		db:          db,
		log:         log.With("service", "CompanyService"),
		companyRepo: companyRepo,
	}
}

func (cs *companyService) Create(ctx context.Context, name, slug, accentColor string) (*domain.Company, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("permission denied: no authenticated user")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("company name required")
	}
	if slug == "" {
		slug = Slugify(name)
	}

	existing, err := cs.companyRepo.GetBySlug(dbctx.New(ctx), slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("slug %q already in use", slug)
	}

	row := &domain.Company{Name: name, Slug: slug, AccentColor: accentColor}
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.WithTx(ctx, tx)
		if _, cErr := cs.companyRepo.Create(dbc, row); cErr != nil {
			return fmt.Errorf("create company: %w", cErr)
		}
		_, lErr := cs.companyRepo.Link(dbc, &domain.UserCompany{
			UserID:    rd.UserID,
			CompanyID: row.ID,
			Role:      domain.RoleAdmin,
		})
		if lErr != nil {
			return fmt.Errorf("link creator as admin: %w", lErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Company created", "company_id", row.ID)
	return row, nil
}

func (cs *companyService) ListMine(ctx context.Context) ([]*domain.Company, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("permission denied: no authenticated user")
	}
	return cs.companyRepo.ListForUser(dbctx.New(ctx), rd.UserID)
}

func (cs *companyService) Get(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	if _, err := requireMember(ctx, cs.companyRepo, id); err != nil {
		return nil, err
	}
	row, err := cs.companyRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("company %s not found", id)
	}
	return row, nil
}

func (cs *companyService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Company, error) {
	if err := requireAdmin(ctx, cs.companyRepo, id); err != nil {
		return nil, err
	}
	allowed := map[string]bool{"name": true, "accent_color": true, "logo_url": true}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) > 0 {
		if err := cs.companyRepo.UpdateFields(dbctx.New(ctx), id, filtered); err != nil {
			return nil, fmt.Errorf("update company: %w", err)
		}
	}
	return cs.companyRepo.GetByID(dbctx.New(ctx), id)
}
