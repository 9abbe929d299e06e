// Package income contains income record use cases.
package income

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

// DeleteIncomeInput represents the input for income record deletion.
type DeleteIncomeInput struct {
	OwnerID  uuid.UUID
	RecordID uuid.UUID
}

// DeleteIncomeUseCase handles income record deletion logic.
type DeleteIncomeUseCase struct {
	incomeRepo adapter.IncomeRecordRepository
}

// NewDeleteIncomeUseCase creates a new DeleteIncomeUseCase instance.
func NewDeleteIncomeUseCase(incomeRepo adapter.IncomeRecordRepository) *DeleteIncomeUseCase {
	return &DeleteIncomeUseCase{
		incomeRepo: incomeRepo,
	}
}

// Execute performs the income record deletion.
func (uc *DeleteIncomeUseCase) Execute(ctx context.Context, input DeleteIncomeInput) error {
	// Fetch record to verify existence and ownership
	record, err := uc.incomeRepo.FindByID(ctx, input.RecordID)
	if err != nil {
		return domainerror.NewRecordError(
			domainerror.ErrCodeIncomeNotFound,
			"income record not found",
			domainerror.ErrIncomeNotFound,
		)
	}

	if record.OwnerID != input.OwnerID {
		return domainerror.NewRecordError(
			domainerror.ErrCodeNotAuthorizedRecord,
			"not authorized to delete this record",
			domainerror.ErrNotAuthorizedToModifyRecord,
		)
	}

	if err := uc.incomeRepo.Delete(ctx, input.RecordID); err != nil {
		return fmt.Errorf("failed to delete income record: %w", err)
	}

	return nil
}
