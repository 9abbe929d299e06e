// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// IncomeRecordModel represents the income_records table in the database.
type IncomeRecordModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the IncomeRecordModel.
func (IncomeRecordModel) TableName() string {
	return "income_records"
}

// ToEntity converts an IncomeRecordModel to a domain IncomeRecord entity.
func (m *IncomeRecordModel) ToEntity() *entity.IncomeRecord {
	return &entity.IncomeRecord{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// IncomeRecordFromEntity creates an IncomeRecordModel from a domain IncomeRecord entity.
func IncomeRecordFromEntity(record *entity.IncomeRecord) *IncomeRecordModel {
	return &IncomeRecordModel{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Description: record.Description,
		Amount:      record.Amount,
		Date:        record.Date,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
