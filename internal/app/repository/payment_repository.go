package repository

import (
	"github.com/peaceseal/peaceseal-backend/internal/app/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(record *model.PaymentRecord) error
	FindByTransactionID(transactionID string) (*model.PaymentRecord, error)
	ListByCompany(companyID uint) ([]model.PaymentRecord, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(record *model.PaymentRecord) error {
	return r.db.Create(record).Error
}

func (r *paymentRepository) FindByTransactionID(transactionID string) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	if err := r.db.Where("transaction_id = ?", transactionID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *paymentRepository) ListByCompany(companyID uint) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
