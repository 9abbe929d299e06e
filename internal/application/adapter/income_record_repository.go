// Package adapter defines interfaces for external dependencies of the application layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// IncomeFilter holds filter criteria for querying income records.
type IncomeFilter struct {
	OwnerID   uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// IncomeTotals holds the aggregate over a set of income records.
type IncomeTotals struct {
	Total decimal.Decimal
	Count int64
}

// IncomeRecordRepository defines the interface for income record persistence.
type IncomeRecordRepository interface {
	// Create persists a new income record.
	Create(ctx context.Context, record *entity.IncomeRecord) error

	// FindByID retrieves an income record by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error)

	// FindByFilter retrieves income records matching the filter, paginated,
	// newest first.
	FindByFilter(ctx context.Context, filter IncomeFilter, pagination RecordPagination) (*entity.IncomeListResult, error)

	// Delete removes an income record.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetTotals sums the amounts of income records for an owner within the
	// optional date range. Summation happens in SQL and is scanned into a
	// decimal; zero totals are returned when no rows match.
	GetTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*IncomeTotals, error)
}
