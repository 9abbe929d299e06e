// Package adapter defines interfaces for external dependencies of the application layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// DeductionFilter holds filter criteria for querying deduction records.
type DeductionFilter struct {
	OwnerID   uuid.UUID
	Status    *entity.DeductionStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// RecordPagination holds pagination parameters for record queries.
type RecordPagination struct {
	Page  int
	Limit int
}

// DeductionTotals holds the aggregate over a set of deduction records.
type DeductionTotals struct {
	Total decimal.Decimal
	Count int64
}

// DeductionRecordRepository defines the interface for deduction record persistence.
// The tax pipeline only reads through it; records are created and reviewed by
// user action, never mutated by the calculator.
type DeductionRecordRepository interface {
	// Create persists a new deduction record.
	Create(ctx context.Context, record *entity.DeductionRecord) error

	// FindByID retrieves a deduction record by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DeductionRecord, error)

	// FindByFilter retrieves deduction records matching the filter, paginated,
	// newest first.
	FindByFilter(ctx context.Context, filter DeductionFilter, pagination RecordPagination) (*entity.DeductionListResult, error)

	// Update persists changes to an existing deduction record.
	Update(ctx context.Context, record *entity.DeductionRecord) error

	// Delete removes a deduction record.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetApprovedTotals sums the amounts of approved deduction records for an
	// owner within the optional date range. Summation happens in SQL and is
	// scanned into a decimal; zero totals are returned when no rows match.
	GetApprovedTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*DeductionTotals, error)
}
