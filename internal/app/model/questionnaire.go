package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Questionnaire holds the applicant's raw answers, one per company. Advisors
// read it but never mutate answers; the manual score lives on the Company.
type Questionnaire struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint    `gorm:"uniqueIndex;not null" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Answers  AnswerMap `gorm:"type:jsonb" json:"answers"`
	Progress int       `gorm:"default:0" json:"progress"` // 0-100 percent of sections with answers

	// Supporting evidence uploaded to object storage.
	DocumentURLs pq.StringArray `gorm:"type:text[]" json:"document_urls,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}
