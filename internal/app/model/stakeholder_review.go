package model

import (
	"time"

	"gorm.io/gorm"
)

type ReviewerRole string
type VerificationStatus string

const (
	ReviewerEmployee ReviewerRole = "employee"
	ReviewerCustomer ReviewerRole = "customer"
	ReviewerInvestor ReviewerRole = "investor"
	ReviewerSupplier ReviewerRole = "supplier"

	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationUnverified VerificationStatus = "unverified"
)

// ReviewerRoles lists every valid stakeholder role.
var ReviewerRoles = []ReviewerRole{ReviewerEmployee, ReviewerCustomer, ReviewerInvestor, ReviewerSupplier}

// IsValid reports whether r is a known stakeholder role.
func (r ReviewerRole) IsValid() bool {
	for _, role := range ReviewerRoles {
		if r == role {
			return true
		}
	}
	return false
}

// StakeholderReview is a single third-party assessment of a company.
// Answers and scores are immutable once created; only the verification
// fields change afterwards. Reviewer PII is stored but never serialized.
type StakeholderReview struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint    `gorm:"not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`

	Role    ReviewerRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Answers AnswerMap    `gorm:"type:jsonb" json:"answers"` // question id -> yes|no|na

	SectionScores ScoreMap `gorm:"type:jsonb" json:"section_scores"`
	TotalScore    int      `gorm:"not null" json:"total_score"` // 0-100
	StarRating    int      `gorm:"not null" json:"star_rating"` // 1-5

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending';index" json:"verification_status"`
	VerificationToken  string             `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	EmailConfirmedAt   *time.Time         `json:"email_confirmed_at,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`

	// Reviewer identity, kept for verification and advisor follow-up only.
	ReviewerName  string `gorm:"type:varchar(120)" json:"-"`
	ReviewerEmail string `gorm:"type:varchar(254)" json:"-"`

	Evaluation *ReviewEvaluation `gorm:"foreignKey:ReviewID" json:"evaluation,omitempty"`
}

func (StakeholderReview) TableName() string {
	return "stakeholder_reviews"
}
