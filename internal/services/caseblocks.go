package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/blocks"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

type CaseBlockService interface {
	GetBlocks(ctx context.Context, companyID, caseID uuid.UUID) ([]blocks.Block, error)

	// Replace is the save operation: the submitted draft array wholly
	// replaces the persisted tree. Rows missing from the draft are deleted,
	// everything else is upserted with sort_order taken from array position,
	// all inside one transaction.
	Replace(ctx context.Context, companyID, caseID uuid.UUID, draft []blocks.Block) ([]blocks.Block, error)

	UploadBlockImage(ctx context.Context, companyID uuid.UUID, filename, contentType string, file io.Reader) (string, error)
}

type caseBlockService struct {
	db            *gorm.DB
	log           *logger.Logger
	caseRepo      repos.CaseRepo
	caseBlockRepo repos.CaseBlockRepo
	companyRepo   repos.CompanyRepo
	bucket        BucketService
}

func NewCaseBlockService(
	db *gorm.DB,
	log *logger.Logger,
	caseRepo repos.CaseRepo,
	caseBlockRepo repos.CaseBlockRepo,
	companyRepo repos.CompanyRepo,
	bucket BucketService,
) CaseBlockService {
	return &caseBlockService{
		db:            db,
		log:           log.With("service", "CaseBlockService"),
		caseRepo:      caseRepo,
		caseBlockRepo: caseBlockRepo,
		companyRepo:   companyRepo,
		bucket:        bucket,
	}
}

func (s *caseBlockService) GetBlocks(ctx context.Context, companyID, caseID uuid.UUID) ([]blocks.Block, error) {
	if err := s.checkCase(ctx, companyID, caseID); err != nil {
		return nil, err
	}
	rows, err := s.caseBlockRepo.GetByCaseID(dbctx.New(ctx), caseID)
	if err != nil {
		return nil, fmt.Errorf("load case blocks: %w", err)
	}
	return decodeRows(rows)
}

func (s *caseBlockService) Replace(ctx context.Context, companyID, caseID uuid.UUID, draft []blocks.Block) ([]blocks.Block, error) {
	if err := s.checkCase(ctx, companyID, caseID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.WithTx(ctx, tx)
		persisted, pErr := s.caseBlockRepo.GetIDsByCaseID(dbc, caseID)
		if pErr != nil {
			return fmt.Errorf("load persisted block ids: %w", pErr)
		}
		plan := blocks.PlanSave(persisted, draft)
		if dErr := s.caseBlockRepo.DeleteByIDs(dbc, caseID, plan.DeleteIDs); dErr != nil {
			return fmt.Errorf("delete removed blocks: %w", dErr)
		}
		rows, bErr := blockRows(caseID, plan.Upserts)
		if bErr != nil {
			return bErr
		}
		if uErr := s.caseBlockRepo.UpsertBatch(dbc, rows); uErr != nil {
			return fmt.Errorf("upsert draft blocks: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Case blocks replaced", "case_id", caseID, "blocks", len(draft))

	// sync the denormalized cover url from the first flagged image
	if cover, ok := blocks.FindCover(draft); ok && cover.URL != "" {
		if err := s.caseRepo.UpdateFields(dbctx.New(ctx), companyID, caseID, map[string]interface{}{"cover_url": cover.URL}); err != nil {
			s.log.Warn("Failed to sync cover url", "case_id", caseID, "error", err)
		}
	}

	return draft, nil
}

func (s *caseBlockService) UploadBlockImage(ctx context.Context, companyID uuid.UUID, filename, contentType string, file io.Reader) (string, error) {
	if _, err := requireMember(ctx, s.companyRepo, companyID); err != nil {
		return "", err
	}
	key := s.bucket.ObjectKey(companyID, PurposeBlock, filename)
	if err := s.bucket.UploadFile(ctx, key, contentType, file); err != nil {
		return "", fmt.Errorf("upload block image: %w", err)
	}
	return s.bucket.GetPublicURL(key), nil
}

func (s *caseBlockService) checkCase(ctx context.Context, companyID, caseID uuid.UUID) error {
	if _, err := requireMember(ctx, s.companyRepo, companyID); err != nil {
		return err
	}
	row, err := s.caseRepo.GetByID(dbctx.New(ctx), companyID, caseID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("case %s not found", caseID)
	}
	return nil
}
