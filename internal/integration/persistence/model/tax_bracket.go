// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// TaxBracketModel represents the tax_brackets table in the database. One row
// per bracket; a table is the set of rows sharing (jurisdiction, tax_year).
type TaxBracketModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Jurisdiction string           `gorm:"type:varchar(50);not null;index:idx_bracket_table"`
	TaxYear      int              `gorm:"type:integer;not null;index:idx_bracket_table"`
	MinIncome    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	MaxIncome    *decimal.Decimal `gorm:"type:decimal(15,2)"` // NULL = unbounded top bracket
	Rate         decimal.Decimal  `gorm:"type:decimal(6,5);not null"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`
}

// TableName returns the table name for the TaxBracketModel.
func (TaxBracketModel) TableName() string {
	return "tax_brackets"
}

// ToEntity converts a TaxBracketModel to a domain TaxBracket entity.
func (m *TaxBracketModel) ToEntity() *entity.TaxBracket {
	return &entity.TaxBracket{
		ID:           m.ID,
		Jurisdiction: m.Jurisdiction,
		TaxYear:      m.TaxYear,
		MinIncome:    m.MinIncome,
		MaxIncome:    m.MaxIncome,
		Rate:         m.Rate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TaxBracketFromEntity creates a TaxBracketModel from a domain TaxBracket entity.
func TaxBracketFromEntity(bracket *entity.TaxBracket) *TaxBracketModel {
	return &TaxBracketModel{
		ID:           bracket.ID,
		Jurisdiction: bracket.Jurisdiction,
		TaxYear:      bracket.TaxYear,
		MinIncome:    bracket.MinIncome,
		MaxIncome:    bracket.MaxIncome,
		Rate:         bracket.Rate,
		CreatedAt:    bracket.CreatedAt,
		UpdatedAt:    bracket.UpdatedAt,
	}
}
