package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/blocks"
	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

// TemplateListing merges built-in presets with the tenant's saved layouts.
type TemplateListing struct {
	Builtin []string               `json:"builtin"`
	Custom  []*domain.CaseTemplate `json:"custom"`
}

type TemplateService interface {
	List(ctx context.Context, companyID uuid.UUID) (*TemplateListing, error)

	// SaveFromCase snapshots a case's current block tree as a reusable
	// layout. Stored blocks carry no identities; see Instantiate.
	SaveFromCase(ctx context.Context, companyID, caseID uuid.UUID, name, description string) (*domain.CaseTemplate, error)

	// Instantiate returns a fresh draft for a template: built-in name or
	// custom id. Every row id and item key is newly minted.
	Instantiate(ctx context.Context, companyID uuid.UUID, ref string) ([]blocks.Block, error)

	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type templateService struct {
	db            *gorm.DB
	log           *logger.Logger
	templateRepo  repos.TemplateRepo
	caseBlockRepo repos.CaseBlockRepo
	caseRepo      repos.CaseRepo
	companyRepo   repos.CompanyRepo
}

func NewTemplateService(
	db *gorm.DB,
	log *logger.Logger,
	templateRepo repos.TemplateRepo,
	caseBlockRepo repos.CaseBlockRepo,
	caseRepo repos.CaseRepo,
	companyRepo repos.CompanyRepo,
) TemplateService {
	return &templateService{
		db:            db,
		log:           log.With("service", "TemplateService"),
		templateRepo:  templateRepo,
		caseBlockRepo: caseBlockRepo,
		caseRepo:      caseRepo,
		companyRepo:   companyRepo,
	}
}

func (ts *templateService) List(ctx context.Context, companyID uuid.UUID) (*TemplateListing, error) {
	if _, err := requireMember(ctx, ts.companyRepo, companyID); err != nil {
		return nil, err
	}
	custom, err := ts.templateRepo.ListByCompany(dbctx.New(ctx), companyID)
	if err != nil {
		return nil, fmt.Errorf("list custom templates: %w", err)
	}
	return &TemplateListing{
		Builtin: blocks.BuiltinTemplateNames(),
		Custom:  custom,
	}, nil
}

func (ts *templateService) SaveFromCase(ctx context.Context, companyID, caseID uuid.UUID, name, description string) (*domain.CaseTemplate, error) {
	if _, err := requireMember(ctx, ts.companyRepo, companyID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("template name required")
	}
	caseRow, err := ts.caseRepo.GetByID(dbctx.New(ctx), companyID, caseID)
	if err != nil {
		return nil, err
	}
	if caseRow == nil {
		return nil, fmt.Errorf("case %s not found", caseID)
	}

	rows, err := ts.caseBlockRepo.GetByCaseID(dbctx.New(ctx), caseID)
	if err != nil {
		return nil, fmt.Errorf("load case blocks: %w", err)
	}
	doc, err := decodeRows(rows)
	if err != nil {
		return nil, err
	}
	portable, err := blocks.MarshalPortable(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize template blocks: %w", err)
	}

	row := &domain.CaseTemplate{
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		Blocks:      portable,
	}
	if _, err := ts.templateRepo.Create(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	ts.log.Info("Template saved", "template_id", row.ID, "source_case_id", caseID)
	return row, nil
}

func (ts *templateService) Instantiate(ctx context.Context, companyID uuid.UUID, ref string) ([]blocks.Block, error) {
	if _, err := requireMember(ctx, ts.companyRepo, companyID); err != nil {
		return nil, err
	}
	if doc, ok := blocks.NewBuiltinTemplate(ref); ok {
		return doc, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("unknown template %q", ref)
	}
	row, err := ts.templateRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("template %s not found", id)
	}
	doc, err := blocks.UnmarshalPortable(row.Blocks)
	if err != nil {
		return nil, fmt.Errorf("rehydrate template: %w", err)
	}
	return doc, nil
}

func (ts *templateService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := requireMember(ctx, ts.companyRepo, companyID); err != nil {
		return err
	}
	return ts.templateRepo.SoftDelete(dbctx.New(ctx), companyID, id)
}
