package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

type IssueRepository interface {
	Create(issue *model.CompanyIssue) error
	FindByID(id uint) (*model.CompanyIssue, error)
	FindByEvaluationID(evaluationID uint) (*model.CompanyIssue, error)
	Update(issue *model.CompanyIssue) error
	CountActiveByCompany(companyID uint) (int64, error)
	ListByCompany(companyID uint) ([]model.CompanyIssue, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.CompanyIssue) error {
	return r.db.Create(issue).Error
}

func (r *issueRepository) FindByID(id uint) (*model.CompanyIssue, error) {
	var issue model.CompanyIssue
	if err := r.db.First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) FindByEvaluationID(evaluationID uint) (*model.CompanyIssue, error) {
	var issue model.CompanyIssue
	if err := r.db.Where("evaluation_id = ?", evaluationID).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) Update(issue *model.CompanyIssue) error {
	return r.db.Save(issue).Error
}

// CountActiveByCompany counts only active issues. Resolved, dismissed and
// pending_review issues do not weigh on the seal.
func (r *issueRepository) CountActiveByCompany(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CompanyIssue{}).
		Where("company_id = ? AND status = ?", companyID, model.IssueActive).
		Count(&count).Error
	return count, err
}

func (r *issueRepository) ListByCompany(companyID uint) ([]model.CompanyIssue, error) {
	var issues []model.CompanyIssue
	err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}
