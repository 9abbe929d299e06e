// Package bracket contains bracket table reference-data use cases.
package bracket

import (
	"context"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
)

// ListBracketsInput represents the input for listing a bracket table.
type ListBracketsInput struct {
	Jurisdiction string
	TaxYear      int
}

// ListBracketsOutput represents the output of listing a bracket table.
type ListBracketsOutput struct {
	Brackets []*entity.TaxBracket
}

// ListBracketsUseCase handles bracket table lookup.
type ListBracketsUseCase struct {
	bracketRepo adapter.TaxBracketRepository
}

// NewListBracketsUseCase creates a new ListBracketsUseCase instance.
func NewListBracketsUseCase(bracketRepo adapter.TaxBracketRepository) *ListBracketsUseCase {
	return &ListBracketsUseCase{
		bracketRepo: bracketRepo,
	}
}

// Execute retrieves the bracket table for a jurisdiction and tax year. The
// repository's not-found error passes through unchanged so callers can
// distinguish an undefined table from an I/O failure.
func (uc *ListBracketsUseCase) Execute(ctx context.Context, input ListBracketsInput) (*ListBracketsOutput, error) {
	brackets, err := uc.bracketRepo.FindByJurisdictionYear(ctx, input.Jurisdiction, input.TaxYear)
	if err != nil {
		return nil, err
	}

	return &ListBracketsOutput{Brackets: brackets}, nil
}
