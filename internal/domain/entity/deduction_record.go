// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionStatus represents the review status of a deduction record.
type DeductionStatus string

const (
	DeductionStatusPending  DeductionStatus = "pending"
	DeductionStatusApproved DeductionStatus = "approved"
	DeductionStatusRejected DeductionStatus = "rejected"
)

// DeductionRecord represents a tax write-off claimed by an owner.
// Only approved records reduce taxable income; approval is the external
// signal that a write-off is valid for tax purposes.
type DeductionRecord struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal // Always >= 0
	TaxCodeID   *uuid.UUID      // Optional reference to a tax code
	Status      DeductionStatus
	Date        time.Time
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDeductionRecord creates a new DeductionRecord in pending status.
func NewDeductionRecord(
	ownerID uuid.UUID,
	description string,
	amount decimal.Decimal,
	taxCodeID *uuid.UUID,
	date time.Time,
) *DeductionRecord {
	now := time.Now().UTC()

	return &DeductionRecord{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		Amount:      amount,
		TaxCodeID:   taxCodeID,
		Status:      DeductionStatusPending,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DeductionListResult represents the result of listing deduction records.
type DeductionListResult struct {
	Records    []*DeductionRecord
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
