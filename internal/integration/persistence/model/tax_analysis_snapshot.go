// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// TaxAnalysisSnapshotModel represents the tax_analysis_snapshots table.
// Rows are append-only; there is no updated_at because rows are never updated.
type TaxAnalysisSnapshotModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Jurisdiction     string          `gorm:"type:varchar(50);not null"`
	TaxYear          int             `gorm:"type:integer;not null"`
	TotalIncome      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalDeductions  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxableIncome    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	EstimatedTax     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UsedFallbackRate bool            `gorm:"not null;default:false"`
	InputsHash       string          `gorm:"type:varchar(64);not null"`
	CreatedAt        time.Time       `gorm:"not null;index"`

	// Relationships (not loaded by default, use Preload)
	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the TaxAnalysisSnapshotModel.
func (TaxAnalysisSnapshotModel) TableName() string {
	return "tax_analysis_snapshots"
}

// ToEntity converts a TaxAnalysisSnapshotModel to a domain TaxAnalysisSnapshot entity.
func (m *TaxAnalysisSnapshotModel) ToEntity() *entity.TaxAnalysisSnapshot {
	return &entity.TaxAnalysisSnapshot{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		Jurisdiction:     m.Jurisdiction,
		TaxYear:          m.TaxYear,
		TotalIncome:      m.TotalIncome,
		TotalDeductions:  m.TotalDeductions,
		TaxableIncome:    m.TaxableIncome,
		EstimatedTax:     m.EstimatedTax,
		UsedFallbackRate: m.UsedFallbackRate,
		InputsHash:       m.InputsHash,
		CreatedAt:        m.CreatedAt,
	}
}

// TaxAnalysisSnapshotFromEntity creates a TaxAnalysisSnapshotModel from a domain entity.
func TaxAnalysisSnapshotFromEntity(snapshot *entity.TaxAnalysisSnapshot) *TaxAnalysisSnapshotModel {
	return &TaxAnalysisSnapshotModel{
		ID:               snapshot.ID,
		OwnerID:          snapshot.OwnerID,
		Jurisdiction:     snapshot.Jurisdiction,
		TaxYear:          snapshot.TaxYear,
		TotalIncome:      snapshot.TotalIncome,
		TotalDeductions:  snapshot.TotalDeductions,
		TaxableIncome:    snapshot.TaxableIncome,
		EstimatedTax:     snapshot.EstimatedTax,
		UsedFallbackRate: snapshot.UsedFallbackRate,
		InputsHash:       snapshot.InputsHash,
		CreatedAt:        snapshot.CreatedAt,
	}
}
