package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.StakeholderReview) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.StakeholderReview, error) {
	var review model.StakeholderReview
	if err := r.db.Preload("Evaluation").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByToken(token string) (*model.StakeholderReview, error) {
	var review model.StakeholderReview
	if err := r.db.Where("verification_token = ?", token).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(review *model.StakeholderReview) error {
	return r.db.Save(review).Error
}

// FindVerifiedByCompanyID returns the full current verified set; aggregation
// always recomputes from this, never from counters.
func (r *ReviewRepository) FindVerifiedByCompanyID(companyID uint) ([]model.StakeholderReview, error) {
	var reviews []model.StakeholderReview
	err := r.db.Where("company_id = ? AND verification_status = ?",
		companyID, model.VerificationVerified).Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) ListByCompanyID(companyID uint, status model.VerificationStatus, offset, limit int) ([]model.StakeholderReview, int64, error) {
	var reviews []model.StakeholderReview
	var total int64

	query := r.db.Model(&model.StakeholderReview{}).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}

	err := query.Preload("Evaluation").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
