package model

import (
	"time"

	"gorm.io/gorm"
)

type IssueSeverity string
type IssueStatus string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"

	IssueActive        IssueStatus = "active"
	IssuePendingReview IssueStatus = "pending_review"
	IssueResolved      IssueStatus = "resolved"
	IssueDismissed     IssueStatus = "dismissed"
)

// CompanyIssue is a tracked complaint derived from a requires_company_response
// evaluation. Exactly one issue exists per evaluation; a closed issue is
// reactivated rather than duplicated. Severity is fixed at creation.
type CompanyIssue struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EvaluationID uint             `gorm:"uniqueIndex;not null" json:"evaluation_id"`
	Evaluation   ReviewEvaluation `gorm:"foreignKey:EvaluationID" json:"-"`

	CompanyID uint    `gorm:"not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`

	Severity IssueSeverity `gorm:"type:varchar(10);not null" json:"severity"`
	Status   IssueStatus   `gorm:"type:varchar(20);default:'active';index" json:"status"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func (CompanyIssue) TableName() string {
	return "company_issues"
}
