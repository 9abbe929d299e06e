// Package deduction contains deduction record use cases.
package deduction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

const (
	// DefaultPage is the default page number for listing.
	DefaultPage = 1
	// DefaultLimit is the default page size for listing.
	DefaultLimit = 50
	// MaxLimit is the maximum page size for listing.
	MaxLimit = 200
)

// ListDeductionsInput represents the input for listing deduction records.
type ListDeductionsInput struct {
	OwnerID   uuid.UUID
	Status    *entity.DeductionStatus
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ListDeductionsOutput represents the output of listing deduction records.
type ListDeductionsOutput struct {
	Result *entity.DeductionListResult
}

// ListDeductionsUseCase handles deduction record listing logic.
type ListDeductionsUseCase struct {
	deductionRepo adapter.DeductionRecordRepository
}

// NewListDeductionsUseCase creates a new ListDeductionsUseCase instance.
func NewListDeductionsUseCase(deductionRepo adapter.DeductionRecordRepository) *ListDeductionsUseCase {
	return &ListDeductionsUseCase{
		deductionRepo: deductionRepo,
	}
}

// Execute retrieves deduction records for the owner with optional filters.
func (uc *ListDeductionsUseCase) Execute(ctx context.Context, input ListDeductionsInput) (*ListDeductionsOutput, error) {
	// Validate status filter
	if input.Status != nil && !isValidStatus(*input.Status) {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidDeductionStatus,
			"status must be 'pending', 'approved' or 'rejected'",
			domainerror.ErrInvalidDeductionStatus,
		)
	}

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

	result, err := uc.deductionRepo.FindByFilter(
		ctx,
		adapter.DeductionFilter{
			OwnerID:   input.OwnerID,
			Status:    input.Status,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		},
		adapter.RecordPagination{
			Page:  input.Page,
			Limit: input.Limit,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction records: %w", err)
	}

	return &ListDeductionsOutput{Result: result}, nil
}

// isValidStatus validates a deduction status value.
func isValidStatus(status entity.DeductionStatus) bool {
	return status == entity.DeductionStatusPending ||
		status == entity.DeductionStatusApproved ||
		status == entity.DeductionStatusRejected
}
