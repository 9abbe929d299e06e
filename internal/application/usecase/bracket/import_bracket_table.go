// Package bracket contains bracket table reference-data use cases.
package bracket

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/domain/valueobject"
)

// BracketRow is one bracket of an imported table.
type BracketRow struct {
	MinIncome decimal.Decimal
	MaxIncome *decimal.Decimal
	Rate      decimal.Decimal
}

// ImportBracketTableInput represents the input for importing a bracket table.
type ImportBracketTableInput struct {
	Jurisdiction string
	TaxYear      int
	Brackets     []BracketRow
}

// ImportBracketTableOutput represents the output of importing a bracket table.
type ImportBracketTableOutput struct {
	Brackets []*entity.TaxBracket
}

// ImportBracketTableUseCase validates and stores a full bracket table for a
// (jurisdiction, taxYear) pair, replacing any previous table atomically.
// Validation at data-entry time is what lets the calculator assume the
// structural invariants later.
type ImportBracketTableUseCase struct {
	bracketRepo adapter.TaxBracketRepository
}

// NewImportBracketTableUseCase creates a new ImportBracketTableUseCase instance.
func NewImportBracketTableUseCase(bracketRepo adapter.TaxBracketRepository) *ImportBracketTableUseCase {
	return &ImportBracketTableUseCase{
		bracketRepo: bracketRepo,
	}
}

// Execute validates and persists the bracket table.
func (uc *ImportBracketTableUseCase) Execute(ctx context.Context, input ImportBracketTableInput) (*ImportBracketTableOutput, error) {
	if input.TaxYear < 1900 {
		return nil, domainerror.NewBracketError(
			domainerror.ErrCodeInvalidTaxYear,
			"tax year is out of range",
			nil,
		)
	}

	brackets := make([]*entity.TaxBracket, len(input.Brackets))
	for i, row := range input.Brackets {
		brackets[i] = &entity.TaxBracket{
			Jurisdiction: input.Jurisdiction,
			TaxYear:      input.TaxYear,
			MinIncome:    row.MinIncome,
			MaxIncome:    row.MaxIncome,
			Rate:         row.Rate,
		}
	}

	// Order by minimum income before structural validation.
	sort.Slice(brackets, func(i, j int) bool {
		return brackets[i].MinIncome.LessThan(brackets[j].MinIncome)
	})

	if _, err := valueobject.NewBracketTable(brackets); err != nil {
		return nil, err
	}

	if err := uc.bracketRepo.ReplaceTable(ctx, input.Jurisdiction, input.TaxYear, brackets); err != nil {
		return nil, fmt.Errorf("failed to store bracket table: %w", err)
	}

	slog.Info("Bracket table imported",
		"jurisdiction", input.Jurisdiction,
		"taxYear", input.TaxYear,
		"brackets", len(brackets),
	)

	return &ImportBracketTableOutput{Brackets: brackets}, nil
}
