package model

import (
	"time"

	"gorm.io/gorm"
)

type EvaluationStatus string

const (
	EvaluationValid            EvaluationStatus = "valid"
	EvaluationInvalid          EvaluationStatus = "invalid"
	EvaluationRequiresResponse EvaluationStatus = "requires_company_response"
	EvaluationResolved         EvaluationStatus = "resolved"
	EvaluationUnresolved       EvaluationStatus = "unresolved"
	EvaluationDismissed        EvaluationStatus = "dismissed"
)

// IsValid reports whether s is a known evaluation status.
func (s EvaluationStatus) IsValid() bool {
	switch s {
	case EvaluationValid, EvaluationInvalid, EvaluationRequiresResponse,
		EvaluationResolved, EvaluationUnresolved, EvaluationDismissed:
		return true
	}
	return false
}

// ReviewEvaluation is an advisor's judgment of exactly one stakeholder
// review. At most one evaluation exists per review (upsert semantics).
type ReviewEvaluation struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReviewID uint              `gorm:"uniqueIndex;not null" json:"review_id"`
	Review   StakeholderReview `gorm:"foreignKey:ReviewID" json:"-"`

	AdvisorID uint  `gorm:"not null;index" json:"advisor_id"`
	Advisor   *User `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`

	Status EvaluationStatus `gorm:"type:varchar(30);not null" json:"status"`
	Notes  string           `gorm:"type:text" json:"notes"`

	// Set when the evaluation enters requires_company_response; not extended
	// on edits unless the evaluation re-enters that state.
	ResponseDeadline *time.Time `json:"response_deadline,omitempty"`

	CompanyResponse string     `gorm:"type:text" json:"company_response,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`

	FinalResolution string `gorm:"type:text" json:"final_resolution,omitempty"`

	Issue *CompanyIssue `gorm:"foreignKey:EvaluationID" json:"issue,omitempty"`
}

func (ReviewEvaluation) TableName() string {
	return "review_evaluations"
}
