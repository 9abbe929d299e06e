// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
)

// RecordAggregates holds the summed inputs to a tax calculation run.
type RecordAggregates struct {
	TotalIncome     decimal.Decimal
	TotalDeductions decimal.Decimal
	IncomeCount     int64
	DeductionCount  int64
}

// AggregateRecordsInput represents the input for record aggregation.
type AggregateRecordsInput struct {
	OwnerID   uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// AggregateRecordsUseCase sums income records and approved deduction records
// for an owner. Pending and rejected deductions are excluded: this is a
// correctness filter, not a display filter, since approval is the external
// signal that a write-off is valid for tax purposes. The use case is a pure
// read with no side effects; an owner with no records aggregates to zeros.
type AggregateRecordsUseCase struct {
	deductionRepo adapter.DeductionRecordRepository
	incomeRepo    adapter.IncomeRecordRepository
}

// NewAggregateRecordsUseCase creates a new AggregateRecordsUseCase instance.
func NewAggregateRecordsUseCase(
	deductionRepo adapter.DeductionRecordRepository,
	incomeRepo adapter.IncomeRecordRepository,
) *AggregateRecordsUseCase {
	return &AggregateRecordsUseCase{
		deductionRepo: deductionRepo,
		incomeRepo:    incomeRepo,
	}
}

// Execute computes the record aggregates for the owner and optional date range.
// Repository I/O errors surface unchanged; the caller decides whether to retry.
func (uc *AggregateRecordsUseCase) Execute(ctx context.Context, input AggregateRecordsInput) (*RecordAggregates, error) {
	incomeTotals, err := uc.incomeRepo.GetTotals(ctx, input.OwnerID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income records: %w", err)
	}

	deductionTotals, err := uc.deductionRepo.GetApprovedTotals(ctx, input.OwnerID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate deduction records: %w", err)
	}

	return &RecordAggregates{
		TotalIncome:     incomeTotals.Total,
		TotalDeductions: deductionTotals.Total,
		IncomeCount:     incomeTotals.Count,
		DeductionCount:  deductionTotals.Count,
	}, nil
}
