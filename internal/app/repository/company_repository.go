package repository

import (
	"time"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

// DirectoryFilter narrows the public directory listing.
type DirectoryFilter struct {
	Country  string
	Industry string
	Statuses []model.CompanyStatus
	Offset   int
	Limit    int
}

type CompanyRepository interface {
	Create(company *model.Company) error
	FindByID(id uint) (*model.Company, error)
	FindBySlug(slug string) (*model.Company, error)
	Update(company *model.Company) error
	ListDirectory(filter DirectoryFilter) ([]model.Company, int64, error)
	ListByAdvisor(advisorID uint) ([]model.Company, error)
	ListAll() ([]model.Company, error)
	CountActiveAssignments(advisorID uint) (int64, error)
	ListExpiringBetween(from, to time.Time) ([]model.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id uint) (*model.Company, error) {
	var company model.Company
	if err := r.db.Preload("Advisor").Preload("Questionnaire").First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindBySlug(slug string) (*model.Company, error) {
	var company model.Company
	if err := r.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(company *model.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) ListDirectory(filter DirectoryFilter) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	query := r.db.Model(&model.Company{})
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	err := query.Order("name ASC").Offset(filter.Offset).Limit(limit).Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func (r *companyRepository) ListByAdvisor(advisorID uint) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.Where("advisor_id = ?", advisorID).Order("updated_at DESC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) ListAll() ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.Order("id ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// CountActiveAssignments counts companies currently in an active audit state
// for one advisor. Used by auto-assignment.
func (r *companyRepository) CountActiveAssignments(advisorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Company{}).
		Where("advisor_id = ? AND status IN ?", advisorID,
			[]model.CompanyStatus{model.StatusAuditInProgress, model.StatusUnderReview}).
		Count(&count).Error
	return count, err
}

// ListExpiringBetween returns verified companies whose certification expires
// inside the given window.
func (r *companyRepository) ListExpiringBetween(from, to time.Time) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.Where("status = ?", model.StatusVerified).
		Where("expires_at >= ? AND expires_at < ?", from, to).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
