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

// ReviewDeductionInput represents the input for reviewing a deduction record.
type ReviewDeductionInput struct {
	OwnerID  uuid.UUID
	RecordID uuid.UUID
	Decision entity.DeductionStatus // approved or rejected
}

// ReviewDeductionOutput represents the output of reviewing a deduction record.
type ReviewDeductionOutput struct {
	Record *entity.DeductionRecord
}

// ReviewDeductionUseCase handles the approve/reject decision on a deduction.
// Approval is the external signal that a write-off is valid for tax purposes;
// only approved records participate in the tax calculation.
type ReviewDeductionUseCase struct {
	deductionRepo adapter.DeductionRecordRepository
}

// NewReviewDeductionUseCase creates a new ReviewDeductionUseCase instance.
func NewReviewDeductionUseCase(deductionRepo adapter.DeductionRecordRepository) *ReviewDeductionUseCase {
	return &ReviewDeductionUseCase{
		deductionRepo: deductionRepo,
	}
}

// Execute applies the review decision to a pending deduction record.
func (uc *ReviewDeductionUseCase) Execute(ctx context.Context, input ReviewDeductionInput) (*ReviewDeductionOutput, error) {
	// Validate decision
	if input.Decision != entity.DeductionStatusApproved && input.Decision != entity.DeductionStatusRejected {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidDeductionStatus,
			"review decision must be 'approved' or 'rejected'",
			domainerror.ErrInvalidDeductionStatus,
		)
	}

	// Fetch record
	record, err := uc.deductionRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeDeductionNotFound,
			"deduction record not found",
			domainerror.ErrDeductionNotFound,
		)
	}

	// Verify ownership
	if record.OwnerID != input.OwnerID {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeNotAuthorizedRecord,
			"not authorized to review this record",
			domainerror.ErrNotAuthorizedToModifyRecord,
		)
	}

	// A record is reviewed once; later recomputes see the decision, not churn.
	if record.Status != entity.DeductionStatusPending {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeDeductionAlreadyReviewed,
			"deduction record has already been reviewed",
			domainerror.ErrDeductionAlreadyReviewed,
		)
	}

	now := time.Now().UTC()
	record.Status = input.Decision
	record.ReviewedAt = &now
	record.UpdatedAt = now

	if err := uc.deductionRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update deduction record: %w", err)
	}

	return &ReviewDeductionOutput{Record: record}, nil
}
