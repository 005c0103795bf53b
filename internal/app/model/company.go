package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type CompanyStatus string
type PaymentStatus string
type SealStatus string

const (
	StatusDraft                CompanyStatus = "draft"
	StatusApplicationSubmitted CompanyStatus = "application_submitted"
	StatusAuditInProgress      CompanyStatus = "audit_in_progress"
	StatusVerified             CompanyStatus = "verified"
	StatusConditional          CompanyStatus = "conditional"
	StatusDidNotPass           CompanyStatus = "did_not_pass"
	StatusUnderReview          CompanyStatus = "under_review"

	PaymentStatusUnpaid       PaymentStatus = "unpaid"
	PaymentStatusPaid         PaymentStatus = "paid"
	PaymentStatusQuoteRequest PaymentStatus = "quote_requested" // RFQ tier, no self-serve amount

	SealActive    SealStatus = "active"
	SealSuspended SealStatus = "suspended"
	SealRevoked   SealStatus = "revoked"
)

// Company is one certification subject. SealStatus and UnresolvedIssuesCount
// are derived values: they are only written by issue-count recomputation,
// never by a direct user action.
type Company struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Slug          string `gorm:"uniqueIndex" json:"slug"`
	Country       string `gorm:"index" json:"country"`
	Industry      string `gorm:"index" json:"industry"`
	EmployeeCount int    `gorm:"not null" json:"employee_count"`
	Website       string `json:"website,omitempty"`

	Status        CompanyStatus `gorm:"type:varchar(30);default:'draft';index" json:"status"`
	Score         *int          `json:"score,omitempty"` // 0-100, nil until scored
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`

	SealStatus            SealStatus `gorm:"type:varchar(20);default:'active';index" json:"seal_status"`
	UnresolvedIssuesCount int        `gorm:"default:0" json:"unresolved_issues_count"`

	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	// Rolling aggregates over currently-verified stakeholder reviews. Always
	// recomputed from the full verified set, never incremented.
	EmployeeRatingAvg   int `gorm:"default:0" json:"employee_rating_avg"`
	EmployeeRatingCount int `gorm:"default:0" json:"employee_rating_count"`
	OverallRatingAvg    int `gorm:"default:0" json:"overall_rating_avg"`
	OverallRatingCount  int `gorm:"default:0" json:"overall_rating_count"`

	AdvisorID *uint `gorm:"index" json:"advisor_id,omitempty"`
	Advisor   *User `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`

	Questionnaire *Questionnaire `gorm:"foreignKey:CompanyID" json:"questionnaire,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

var nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}-]+`)
var repeatedHyphens = regexp.MustCompile(`-+`)

func generateSlug(country, name string) string {
	slug := fmt.Sprintf("%s-%s", country, name)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}

// BeforeCreate assigns a unique directory slug when none is set.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		baseSlug := generateSlug(c.Country, c.Name)
		slug := baseSlug

		counter := 1
		for {
			var count int64
			if err := tx.Model(&Company{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				break
			}
			counter++
			slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		}

		c.Slug = slug
	}
	return nil
}
