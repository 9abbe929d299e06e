// Package deduction contains deduction record use cases.
package deduction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

// DeleteDeductionInput represents the input for deduction record deletion.
type DeleteDeductionInput struct {
	OwnerID  uuid.UUID
	RecordID uuid.UUID
}

// DeleteDeductionUseCase handles deduction record deletion logic.
type DeleteDeductionUseCase struct {
	deductionRepo adapter.DeductionRecordRepository
}

// NewDeleteDeductionUseCase creates a new DeleteDeductionUseCase instance.
func NewDeleteDeductionUseCase(deductionRepo adapter.DeductionRecordRepository) *DeleteDeductionUseCase {
	return &DeleteDeductionUseCase{
		deductionRepo: deductionRepo,
	}
}

// Execute performs the deduction record deletion.
func (uc *DeleteDeductionUseCase) Execute(ctx context.Context, input DeleteDeductionInput) error {
	// Fetch record to verify existence and ownership
	record, err := uc.deductionRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		return domainerror.NewRecordError(
			domainerror.ErrCodeDeductionNotFound,
			"deduction record not found",
			domainerror.ErrDeductionNotFound,
		)
	}

	if record.OwnerID != input.OwnerID {
		return domainerror.NewRecordError(
			domainerror.ErrCodeNotAuthorizedRecord,
			"not authorized to delete this record",
			domainerror.ErrNotAuthorizedToModifyRecord,
		)
	}

	if err := uc.deductionRepo.Delete(ctx, input.RecordID); err != nil {
		return fmt.Errorf("failed to delete deduction record: %w", err)
	}

	return nil
}
