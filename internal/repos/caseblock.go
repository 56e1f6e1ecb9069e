package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/onmx/studio-backend/internal/domain"
	"github.com/onmx/studio-backend/internal/pkg/dbctx"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type CaseBlockRepo interface {
	GetByCaseID(dbc dbctx.Context, caseID uuid.UUID) ([]*domain.CaseBlock, error)
	GetIDsByCaseID(dbc dbctx.Context, caseID uuid.UUID) ([]uuid.UUID, error)
	UpsertBatch(dbc dbctx.Context, rows []*domain.CaseBlock) error
	DeleteByIDs(dbc dbctx.Context, caseID uuid.UUID, ids []uuid.UUID) error
	DeleteByCaseID(dbc dbctx.Context, caseID uuid.UUID) error
}

type caseBlockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseBlockRepo(db *gorm.DB, baseLog *logger.Logger) CaseBlockRepo {
	return &caseBlockRepo{db: db, log: baseLog.With("repo", "CaseBlockRepo")}
}

func (r *caseBlockRepo) GetByCaseID(dbc dbctx.Context, caseID uuid.UUID) ([]*domain.CaseBlock, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*domain.CaseBlock
	err := t.WithContext(dbc.Ctx).
		Where("case_id = ?", caseID).
		Order("sort_order ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *caseBlockRepo) GetIDsByCaseID(dbc dbctx.Context, caseID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []uuid.UUID
	err := t.WithContext(dbc.Ctx).
		Model(&domain.CaseBlock{}).
		Where("case_id = ?", caseID).
		Pluck("id", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertBatch writes draft rows keyed by id: new blocks insert, existing
// blocks overwrite their type, content and sort_order in place.
func (r *caseBlockRepo) UpsertBatch(dbc dbctx.Context, rows []*domain.CaseBlock) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "content", "sort_order", "updated_at"}),
		}).
		Create(&rows).Error
}

func (r *caseBlockRepo) DeleteByIDs(dbc dbctx.Context, caseID uuid.UUID, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("case_id = ? AND id IN ?", caseID, ids).
		Delete(&domain.CaseBlock{}).Error
}

func (r *caseBlockRepo) DeleteByCaseID(dbc dbctx.Context, caseID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("case_id = ?", caseID).
		Delete(&domain.CaseBlock{}).Error
}
