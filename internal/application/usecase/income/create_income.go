// Package income contains income record use cases.
package income

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

// CreateIncomeInput represents the input for income record creation.
type CreateIncomeInput struct {
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// CreateIncomeOutput represents the output of income record creation.
type CreateIncomeOutput struct {
	Record *entity.IncomeRecord
}

// CreateIncomeUseCase handles income record creation logic.
type CreateIncomeUseCase struct {
	incomeRepo adapter.IncomeRecordRepository
}

// NewCreateIncomeUseCase creates a new CreateIncomeUseCase instance.
func NewCreateIncomeUseCase(incomeRepo adapter.IncomeRecordRepository) *CreateIncomeUseCase {
	return &CreateIncomeUseCase{
		incomeRepo: incomeRepo,
	}
}

// Execute performs the income record creation.
func (uc *CreateIncomeUseCase) Execute(ctx context.Context, input CreateIncomeInput) (*CreateIncomeOutput, error) {
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
			"income amount must not be negative",
			domainerror.ErrNegativeRecordAmount,
		)
	}

	// Create record entity
	record := entity.NewIncomeRecord(
		input.OwnerID,
		input.Description,
		input.Amount,
		input.Date,
	)

	// Save record to database
	if err := uc.incomeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create income record: %w", err)
	}

	return &CreateIncomeOutput{Record: record}, nil
}
