package services

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/onmx/studio-backend/internal/blocks"
	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/repos"
)

// Page-level layout scalars are clamped to fixed ranges on every write; out
// of range input is coerced, never rejected.
const (
	maxContainerPad    = 200
	maxContainerRadius = 100
	maxContainerGap    = 100
)

// CaseInput carries the writable case-metadata fields. Nil pointers mean
// "not sent", so a partial update leaves the column alone; a zero uuid in
// ClientID or CategoryID clears the link.
type CaseInput struct {
	Title           string
	Slug            string
	Summary         *string
	Year            *int
	ClientID        *uuid.UUID
	CategoryID      *uuid.UUID
	BackgroundColor *string
	ContainerPad    *int
	ContainerRadius *int
	ContainerGap    *int
}

type CaseService interface {
	Create(ctx context.Context, companyID uuid.UUID, in CaseInput, templateName string) (*domain.Case, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*domain.Case, error)
	List(ctx context.Context, companyID uuid.UUID, filter repos.CaseFilter) ([]*domain.Case, error)
	Update(ctx context.Context, companyID, id uuid.UUID, in CaseInput) (*domain.Case, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	Duplicate(ctx context.Context, companyID, id uuid.UUID) (*domain.Case, error)
	SetStatus(ctx context.Context, companyID, id uuid.UUID, status string) (*domain.Case, error)
	UploadCover(ctx context.Context, companyID, id uuid.UUID, filename, contentType string, file io.Reader) (*domain.Case, error)
}

type caseService struct {
	db            *gorm.DB
	log           *logger.Logger
	caseRepo      repos.CaseRepo
	caseBlockRepo repos.CaseBlockRepo
	companyRepo   repos.CompanyRepo
	bucket        BucketService
}

func NewCaseService(
	db *gorm.DB,
	log *logger.Logger,
	caseRepo repos.CaseRepo,
	caseBlockRepo repos.CaseBlockRepo,
	companyRepo repos.CompanyRepo,
	bucket BucketService,
) CaseService {
	return &caseService{
		db:            db,
		log:           log.With("service", "CaseService"),
		caseRepo:      caseRepo,
		caseBlockRepo: caseBlockRepo,
		companyRepo:   companyRepo,
		bucket:        bucket,
	}
}

func (cs *caseService) Create(ctx context.Context, companyID uuid.UUID, in CaseInput, templateName string) (*domain.Case, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title required")
	}
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	if templateName == "" {
		templateName = blocks.TemplateDefault
	}
	doc, ok := blocks.NewBuiltinTemplate(templateName)
	if !ok {
		return nil, fmt.Errorf("unknown template %q", templateName)
	}

	row := &domain.Case{
		CompanyID: companyID,
		Status:    domain.CaseStatusDraft,
	}
	applyCaseInput(row, in)
	row.Slug = slug

	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.WithTx(ctx, tx)
		taken, sErr := cs.caseRepo.SlugTaken(dbc, companyID, row.Slug, uuid.Nil)
		if sErr != nil {
			return fmt.Errorf("check slug: %w", sErr)
		}
		if taken {
			return fmt.Errorf("slug %q already in use", row.Slug)
		}
		if _, cErr := cs.caseRepo.Create(dbc, row); cErr != nil {
			return fmt.Errorf("create case: %w", cErr)
		}
		rows, bErr := blockRows(row.ID, doc)
		if bErr != nil {
			return bErr
		}
		if uErr := cs.caseBlockRepo.UpsertBatch(dbc, rows); uErr != nil {
			return fmt.Errorf("seed template blocks: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Case created", "case_id", row.ID, "template", templateName)
	return row, nil
}

func (cs *caseService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.Case, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	row, err := cs.caseRepo.GetByID(dbctx.New(ctx), companyID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("case %s not found", id)
	}
	return row, nil
}

func (cs *caseService) List(ctx context.Context, companyID uuid.UUID, filter repos.CaseFilter) ([]*domain.Case, error) {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return nil, err
	}
	return cs.caseRepo.List(dbctx.New(ctx), companyID, filter)
}

func (cs *caseService) Update(ctx context.Context, companyID, id uuid.UUID, in CaseInput) (*domain.Case, error) {
	row, err := cs.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != "" && in.Slug != row.Slug {
		taken, sErr := cs.caseRepo.SlugTaken(dbctx.New(ctx), companyID, in.Slug, id)
		if sErr != nil {
			return nil, fmt.Errorf("check slug: %w", sErr)
		}
		if taken {
			return nil, fmt.Errorf("slug %q already in use", in.Slug)
		}
		row.Slug = in.Slug
	}
	applyCaseInput(row, in)
	if err := cs.caseRepo.Update(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}
	return row, nil
}

func (cs *caseService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := requireMember(ctx, cs.companyRepo, companyID); err != nil {
		return err
	}
	return cs.caseRepo.SoftDelete(dbctx.New(ctx), companyID, id)
}

// Duplicate copies a case and its whole block tree. Every block row id and
// item key is regenerated so the copy never collides with the source.
func (cs *caseService) Duplicate(ctx context.Context, companyID, id uuid.UUID) (*domain.Case, error) {
	src, err := cs.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	srcRows, err := cs.caseBlockRepo.GetByCaseID(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load source blocks: %w", err)
	}
	doc, err := decodeRows(srcRows)
	if err != nil {
		return nil, err
	}
	doc = blocks.Rekey(doc)

	copyRow := *src
	copyRow.ID = uuid.Nil
	copyRow.Title = src.Title + " (cópia)"
	copyRow.Status = domain.CaseStatusDraft
	copyRow.PublishedAt = nil

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.WithTx(ctx, tx)
		slug := src.Slug
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s-%d", slug, i)
			taken, sErr := cs.caseRepo.SlugTaken(dbc, companyID, candidate, uuid.Nil)
			if sErr != nil {
				return fmt.Errorf("check slug: %w", sErr)
			}
			if !taken {
				copyRow.Slug = candidate
				break
			}
		}
		if _, cErr := cs.caseRepo.Create(dbc, &copyRow); cErr != nil {
			return fmt.Errorf("create case copy: %w", cErr)
		}
		rows, bErr := blockRows(copyRow.ID, doc)
		if bErr != nil {
			return bErr
		}
		if uErr := cs.caseBlockRepo.UpsertBatch(dbc, rows); uErr != nil {
			return fmt.Errorf("copy blocks: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Case duplicated", "source_case_id", id, "case_id", copyRow.ID)
	return &copyRow, nil
}

func (cs *caseService) SetStatus(ctx context.Context, companyID, id uuid.UUID, status string) (*domain.Case, error) {
	switch status {
	case domain.CaseStatusDraft, domain.CaseStatusRestricted, domain.CaseStatusPublished:
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}
	row, err := cs.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	row.Status = status
	if status == domain.CaseStatusPublished {
		now := time.Now()
		row.PublishedAt = &now
	} else {
		row.PublishedAt = nil
	}
	if err := cs.caseRepo.Update(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("update case status: %w", err)
	}
	cs.log.Info("Case status changed", "case_id", id, "status", status)
	return row, nil
}

func (cs *caseService) UploadCover(ctx context.Context, companyID, id uuid.UUID, filename, contentType string, file io.Reader) (*domain.Case, error) {
	row, err := cs.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	key := cs.bucket.ObjectKey(companyID, PurposeCover, filename)
	if err := cs.bucket.UploadFile(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}
	row.CoverURL = cs.bucket.GetPublicURL(key)
	if err := cs.caseRepo.Update(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("save cover url: %w", err)
	}
	return row, nil
}

func applyCaseInput(row *domain.Case, in CaseInput) {
	if in.Title != "" {
		row.Title = strings.TrimSpace(in.Title)
	}
	if in.Summary != nil {
		row.Summary = *in.Summary
	}
	if in.Year != nil {
		row.Year = *in.Year
	}
	if in.ClientID != nil {
		row.ClientID = nilIfZero(*in.ClientID)
	}
	if in.CategoryID != nil {
		row.CategoryID = nilIfZero(*in.CategoryID)
	}
	if in.BackgroundColor != nil {
		row.BackgroundColor = *in.BackgroundColor
	}
	if in.ContainerPad != nil {
		row.ContainerPad = clamp(*in.ContainerPad, 0, maxContainerPad)
	}
	if in.ContainerRadius != nil {
		row.ContainerRadius = clamp(*in.ContainerRadius, 0, maxContainerRadius)
	}
	if in.ContainerGap != nil {
		row.ContainerGap = clamp(*in.ContainerGap, 0, maxContainerGap)
	}
}

func nilIfZero(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases, strips accents common in pt-BR titles and collapses
// everything else to single dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "ã", "a", "â", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "õ", "o", "ô", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
	s = replacer.Replace(s)
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// blockRows renders a draft document into persistable rows, sort_order taken
// from array position.
func blockRows(caseID uuid.UUID, doc []blocks.Block) ([]*domain.CaseBlock, error) {
	out := make([]*domain.CaseBlock, 0, len(doc))
	for i, b := range doc {
		content, err := blocks.EncodeContent(b)
		if err != nil {
			return nil, fmt.Errorf("encode block %d: %w", i, err)
		}
		out = append(out, &domain.CaseBlock{
			ID:        b.ID,
			CaseID:    caseID,
			Type:      string(b.Type),
			Content:   content,
			SortOrder: i,
		})
	}
	return out, nil
}

func decodeRows(rows []*domain.CaseBlock) ([]blocks.Block, error) {
	out := make([]blocks.Block, 0, len(rows))
	for _, r := range rows {
		b, err := blocks.DecodeBlock(r.ID, r.Type, r.Content)
		if err != nil {
			return nil, fmt.Errorf("decode block %s: %w", r.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}
