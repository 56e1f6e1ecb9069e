package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CaseBlock is one persisted node of a case's block tree. The row id doubles
// as the block's editing key: once saved, drafts keep the same id. Content is
// the tagged-union payload (container or spacer); sort_order is dense,
// zero-based, and recomputed from draft array position on every save; it is
// never trusted from a client on write.
type CaseBlock struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"case_id"`
	Type      string         `gorm:"column:type;not null" json:"type"` // container|spacer
	Content   datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`
	SortOrder int            `gorm:"column:sort_order;not null;default:0;index" json:"sort_order"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CaseBlock) TableName() string { return "case_block" }
