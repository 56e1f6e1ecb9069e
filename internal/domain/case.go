package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CaseStatusDraft      = "draft"
	CaseStatusRestricted = "restricted"
	CaseStatusPublished  = "published"
)

// Case is the owning entity of a block tree. Page-level appearance scalars
// (background, container padding/radius/gap) live here, not on blocks, and
// are clamped on write.
type Case struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index;index:idx_case_company_slug,unique,priority:1" json:"company_id"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`

	Title   string `gorm:"column:title;not null" json:"title"`
	Slug    string `gorm:"column:slug;not null;index:idx_case_company_slug,unique,priority:2" json:"slug"`
	Summary string `gorm:"column:summary" json:"summary,omitempty"`
	Year    int    `gorm:"column:year" json:"year,omitempty"`

	CoverURL        string `gorm:"column:cover_url" json:"cover_url,omitempty"`
	BackgroundColor string `gorm:"column:background_color" json:"background_color,omitempty"`
	ContainerPad    int    `gorm:"column:container_pad;not null;default:0" json:"container_pad"`
	ContainerRadius int    `gorm:"column:container_radius;not null;default:0" json:"container_radius"`
	ContainerGap    int    `gorm:"column:container_gap;not null;default:0" json:"container_gap"`

	Status      string     `gorm:"column:status;not null;default:'draft';index" json:"status"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Case) TableName() string { return "case" }
