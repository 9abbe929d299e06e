// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// DeductionRecordModel represents the deduction_records table in the database.
type DeductionRecordModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxCodeID   *uuid.UUID      `gorm:"type:uuid"`
	Status      string          `gorm:"type:varchar(10);not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	ReviewedAt  *time.Time      `gorm:"type:timestamp"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the DeductionRecordModel.
func (DeductionRecordModel) TableName() string {
	return "deduction_records"
}

// ToEntity converts a DeductionRecordModel to a domain DeductionRecord entity.
func (m *DeductionRecordModel) ToEntity() *entity.DeductionRecord {
	return &entity.DeductionRecord{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Description: m.Description,
		Amount:      m.Amount,
		TaxCodeID:   m.TaxCodeID,
		Status:      entity.DeductionStatus(m.Status),
		Date:        m.Date,
		ReviewedAt:  m.ReviewedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// DeductionRecordFromEntity creates a DeductionRecordModel from a domain DeductionRecord entity.
func DeductionRecordFromEntity(record *entity.DeductionRecord) *DeductionRecordModel {
	return &DeductionRecordModel{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Description: record.Description,
		Amount:      record.Amount,
		TaxCodeID:   record.TaxCodeID,
		Status:      string(record.Status),
		Date:        record.Date,
		ReviewedAt:  record.ReviewedAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
