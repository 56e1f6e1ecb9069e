package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"column:password;not null" json:"-"`
	Name      string         `gorm:"column:name" json:"name"`
	Invited   bool           `gorm:"column:invited;not null;default:false" json:"invited"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// UserCompany links a user to a tenant with a role. Invite/create user
// operations write one row per granted company.
type UserCompany struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_company,priority:1" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_company,priority:2" json:"company_id"`
	Role      string    `gorm:"column:role;not null;default:'editor'" json:"role"` // admin|editor
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserCompany) TableName() string { return "user_company" }

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
