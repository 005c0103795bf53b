package repository

import (
	"errors"

	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

// UpsertOutcome says whether an upsert inserted a new row or replaced the
// existing one for the review.
type UpsertOutcome int

const (
	UpsertCreated UpsertOutcome = iota
	UpsertUpdated
)

type EvaluationRepository interface {
	Upsert(eval *model.ReviewEvaluation) (UpsertOutcome, error)
	FindByID(id uint) (*model.ReviewEvaluation, error)
	FindByReviewID(reviewID uint) (*model.ReviewEvaluation, error)
	Update(eval *model.ReviewEvaluation) error
	ListByStatus(status model.EvaluationStatus) ([]model.ReviewEvaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert keeps at most one evaluation per review. A second evaluation of the
// same review overwrites the first in place so its id and history survive.
func (r *evaluationRepository) Upsert(eval *model.ReviewEvaluation) (UpsertOutcome, error) {
	var existing model.ReviewEvaluation
	err := r.db.Where("review_id = ?", eval.ReviewID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if createErr := r.db.Create(eval).Error; createErr != nil {
				return UpsertCreated, createErr
			}
			return UpsertCreated, nil
		}
		return UpsertCreated, err
	}

	eval.ID = existing.ID
	eval.CreatedAt = existing.CreatedAt
	if err := r.db.Save(eval).Error; err != nil {
		return UpsertUpdated, err
	}
	return UpsertUpdated, nil
}

func (r *evaluationRepository) FindByID(id uint) (*model.ReviewEvaluation, error) {
	var eval model.ReviewEvaluation
	if err := r.db.First(&eval, id).Error; err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepository) FindByReviewID(reviewID uint) (*model.ReviewEvaluation, error) {
	var eval model.ReviewEvaluation
	if err := r.db.Where("review_id = ?", reviewID).First(&eval).Error; err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepository) Update(eval *model.ReviewEvaluation) error {
	return r.db.Save(eval).Error
}

func (r *evaluationRepository) ListByStatus(status model.EvaluationStatus) ([]model.ReviewEvaluation, error) {
	var evals []model.ReviewEvaluation
	err := r.db.Where("status = ?", status).Order("id ASC").Find(&evals).Error
	if err != nil {
		return nil, err
	}
	return evals, nil
}
