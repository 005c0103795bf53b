package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCompany    UserRole = "company"     // applicant company account
	RoleAdvisor    UserRole = "advisor"     // scores questionnaires, evaluates reviews
	RoleAdmin      UserRole = "admin"       // program administration
	RoleSuperAdmin UserRole = "super_admin" // program administration + overrides
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'company'" json:"role"`
	CompanyID    *uint          `gorm:"index" json:"company_id,omitempty"` // applicant accounts only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the role may act on behalf of the program.
func (r UserRole) IsStaff() bool {
	return r == RoleAdvisor || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin reports whether the role carries admin privileges.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
