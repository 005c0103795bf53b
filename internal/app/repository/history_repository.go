package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

// HistoryRepository is append-only: entries are never updated or deleted.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(entry *model.StatusHistoryEntry) error {
	return r.db.Create(entry).Error
}

func (r *HistoryRepository) ListByCompanyID(companyID uint) ([]model.StatusHistoryEntry, error) {
	var entries []model.StatusHistoryEntry
	err := r.db.Where("company_id = ?", companyID).Order("created_at ASC, id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepository) CountByCompanyID(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.StatusHistoryEntry{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}
