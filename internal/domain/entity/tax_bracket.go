// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxBracket represents a single income range taxed at a fixed marginal rate
// within a (jurisdiction, taxYear) bracket table. A nil MaxIncome marks the
// unbounded top bracket. Bracket rows are reference data and are never
// mutated by the calculator.
type TaxBracket struct {
	ID           uuid.UUID
	Jurisdiction string
	TaxYear      int
	MinIncome    decimal.Decimal
	MaxIncome    *decimal.Decimal // nil = unbounded top bracket
	Rate         decimal.Decimal  // In [0, 1]
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpenEnded reports whether this is the unbounded top bracket.
func (b *TaxBracket) IsOpenEnded() bool {
	return b.MaxIncome == nil
}
