// Package income contains income record use cases.
package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
)

const (
	// DefaultPage is the default page number for listing.
	DefaultPage = 1
	// DefaultLimit is the default page size for listing.
	DefaultLimit = 50
	// MaxLimit is the maximum page size for listing.
	MaxLimit = 200
)

// ListIncomesInput represents the input for listing income records.
type ListIncomesInput struct {
	OwnerID   uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ListIncomesOutput represents the output of listing income records.
type ListIncomesOutput struct {
	Result *entity.IncomeListResult
}

// ListIncomesUseCase handles income record listing logic.
type ListIncomesUseCase struct {
	incomeRepo adapter.IncomeRecordRepository
}

// NewListIncomesUseCase creates a new ListIncomesUseCase instance.
func NewListIncomesUseCase(incomeRepo adapter.IncomeRecordRepository) *ListIncomesUseCase {
	return &ListIncomesUseCase{
		incomeRepo: incomeRepo,
	}
}

// Execute retrieves income records for the owner with optional filters.
func (uc *ListIncomesUseCase) Execute(ctx context.Context, input ListIncomesInput) (*ListIncomesOutput, error) {
	// Normalize pagination
	if input.Page < 1 {
		input.Page = DefaultPage
	}
	if input.Limit < 1 {
		input.Limit = DefaultLimit
	}
	if input.Limit > MaxLimit {
		input.Limit = MaxLimit
	}

	result, err := uc.incomeRepo.FindByFilter(
		ctx,
		adapter.IncomeFilter{
			OwnerID:   input.OwnerID,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		},
		adapter.RecordPagination{
			Page:  input.Page,
			Limit: input.Limit,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}

	return &ListIncomesOutput{Result: result}, nil
}
