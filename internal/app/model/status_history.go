package model

import (
	"time"
)

// StatusHistoryEntry is the append-only audit log of status, score and seal
// changes. Rows are never mutated or deleted; this is the only record of why
// a company is in its current state.
type StatusHistoryEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CompanyID uint    `gorm:"not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`

	Status CompanyStatus `gorm:"type:varchar(30);not null" json:"status"`
	Score  *int          `json:"score,omitempty"`
	Notes  string        `gorm:"type:text" json:"notes"`

	ActorKind PrincipalKind `gorm:"type:varchar(10);not null" json:"actor_kind"`
	ActorID   *uint         `json:"actor_id,omitempty"`
}

func (StatusHistoryEntry) TableName() string {
	return "status_history_entries"
}

// NewHistoryEntry builds an audit row for the given principal.
func NewHistoryEntry(companyID uint, status CompanyStatus, score *int, notes string, p Principal) *StatusHistoryEntry {
	return &StatusHistoryEntry{
		CompanyID: companyID,
		Status:    status,
		Score:     score,
		Notes:     notes,
		ActorKind: p.Kind,
		ActorID:   p.UserID,
	}
}
