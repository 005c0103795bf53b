package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

type QuestionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{db: db}
}

func (r *QuestionnaireRepository) Create(q *model.Questionnaire) error {
	return r.db.Create(q).Error
}

func (r *QuestionnaireRepository) FindByCompanyID(companyID uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	if err := r.db.Where("company_id = ?", companyID).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionnaireRepository) Update(q *model.Questionnaire) error {
	return r.db.Save(q).Error
}
