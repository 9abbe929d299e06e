// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeRecord represents a revenue entry for an owner. Income records are
// read-only inputs to the tax calculation.
type IncomeRecord struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal // Always >= 0
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIncomeRecord creates a new IncomeRecord entity.
func NewIncomeRecord(
	ownerID uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
) *IncomeRecord {
	now := time.Now().UTC()

	return &IncomeRecord{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		Amount:      amount,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IncomeListResult represents the result of listing income records.
type IncomeListResult struct {
	Records    []*IncomeRecord
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
