// Package deduction contains deduction record use cases.
package deduction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for record descriptions.
	MaxDescriptionLength = 255
)

// CreateDeductionInput represents the input for deduction record creation.
type CreateDeductionInput struct {
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	TaxCodeID   *uuid.UUID
	Date        time.Time
}

// CreateDeductionOutput represents the output of deduction record creation.
type CreateDeductionOutput struct {
	Record *entity.DeductionRecord
}

// CreateDeductionUseCase handles deduction record creation logic.
type CreateDeductionUseCase struct {
	deductionRepo adapter.DeductionRecordRepository
}

// NewCreateDeductionUseCase creates a new CreateDeductionUseCase instance.
func NewCreateDeductionUseCase(deductionRepo adapter.DeductionRecordRepository) *CreateDeductionUseCase {
	return &CreateDeductionUseCase{
		deductionRepo: deductionRepo,
	}
}

// Execute performs the deduction record creation. New records always start in
// pending status; only an explicit review can approve them for tax purposes.
func (uc *CreateDeductionUseCase) Execute(ctx context.Context, input CreateDeductionInput) (*CreateDeductionOutput, error) {
	// Validate description length
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeRecordDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrRecordDescriptionTooLong,
		)
	}

	// Validate amount
	if input.Amount.IsNegative() {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeNegativeRecordAmount,
			"deduction amount must not be negative",
			domainerror.ErrNegativeRecordAmount,
		)
	}

	// Create record entity
	record := entity.NewDeductionRecord(
		input.OwnerID,
		input.Description,
		input.Amount,
		input.TaxCodeID,
		input.Date,
	)

	// Save record to database
	if err := uc.deductionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create deduction record: %w", err)
	}

	return &CreateDeductionOutput{Record: record}, nil
}
