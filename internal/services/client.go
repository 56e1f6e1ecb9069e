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

type ClientService interface {
	Create(ctx context.Context, companyID uuid.UUID, name, logoURL string) (*domain.Client, error)
	List(ctx context.Context, companyID uuid.UUID) ([]*domain.Client, error)
	Update(ctx context.Context, companyID, id uuid.UUID, name, logoURL string) (*domain.Client, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type clientService struct {
	db          *gorm.DB
	log         *logger.Logger
	clientRepo  repos.ClientRepo
	companyRepo repos.CompanyRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo, companyRepo repos.CompanyRepo) ClientService {
	return &clientService{
		db:          db,
		log:         log.With("service", "ClientService"),
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
	}
}

func (cs *clientService) Create(ctx context.Context, companyID uuid.UUID, name, logoURL string) (*domain.Client, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("client name required")
	}
	row := &domain.Client{CompanyID: companyID, Name: name, LogoURL: logoURL}
	if _, err := cs.clientRepo.Create(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return row, nil
}

func (cs *clientService) List(ctx context.Context, companyID uuid.UUID) ([]*domain.Client, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	return cs.clientRepo.ListByCompany(dbctx.New(ctx), companyID)
}

func (cs *clientService) Update(ctx context.Context, companyID, id uuid.UUID, name, logoURL string) (*domain.Client, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	row, err := cs.clientRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("client %s not found", id)
	}
	updates := map[string]interface{}{}
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
		row.Name = name
	}
	if logoURL != "" {
		updates["logo_url"] = logoURL
		row.LogoURL = logoURL
	}
	if len(updates) == 0 {
		return row, nil
	}
	if err := cs.clientRepo.UpdateFields(dbctx.New(ctx), companyID, id, updates); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return row, nil
}

func (cs *clientService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return err
	}
	return cs.clientRepo.SoftDelete(dbctx.New(ctx), companyID, id)
}
