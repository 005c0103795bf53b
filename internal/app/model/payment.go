package model

import (
	"time"
)

// PaymentRecord is one confirmed certification-fee payment. The unique
// transaction id makes confirmation idempotent: client-confirmed and
// webhook-confirmed paths race to record the same transaction.
type PaymentRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CompanyID uint    `gorm:"not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`

	TransactionID string `gorm:"type:varchar(80);uniqueIndex;not null" json:"transaction_id"`
	AmountCents   int64  `gorm:"not null" json:"amount_cents"`

	ConfirmedAt time.Time `json:"confirmed_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
