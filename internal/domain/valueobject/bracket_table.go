// Package valueobject contains immutable domain values and the business
// rules that operate on them.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

// BracketTable is the ordered set of tax brackets for one
// (jurisdiction, taxYear) pair. A valid table is sorted ascending by
// MinIncome, starts at zero, is contiguous with no gaps or overlaps, and
// ends in exactly one open-ended top bracket.
type BracketTable struct {
	brackets []*entity.TaxBracket
}

// NewBracketTable validates the given brackets and returns a BracketTable.
// The slice must already be ordered ascending by MinIncome; validation
// rejects tables that violate any structural invariant.
func NewBracketTable(brackets []*entity.TaxBracket) (*BracketTable, error) {
	if len(brackets) == 0 {
		return nil, domainerror.NewBracketError(
			domainerror.ErrCodeEmptyBracketTable,
			"bracket table must contain at least one bracket",
			domainerror.ErrEmptyBracketTable,
		)
	}

	if !brackets[0].MinIncome.IsZero() {
		return nil, domainerror.NewBracketError(
			domainerror.ErrCodeBracketTableGap,
			"first bracket must start at zero income",
			domainerror.ErrBracketTableGap,
		)
	}

	for i, b := range brackets {
		if b.MinIncome.IsNegative() {
			return nil, domainerror.NewBracketError(
				domainerror.ErrCodeNegativeBracketBound,
				"bracket minimum income must not be negative",
				domainerror.ErrNegativeBracketBound,
			)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domainerror.NewBracketError(
				domainerror.ErrCodeInvalidBracketRate,
				"bracket rate must be between 0 and 1",
				domainerror.ErrInvalidBracketRate,
			)
		}

		last := i == len(brackets)-1

		if b.MaxIncome == nil {
			// Only the final bracket may be open-ended.
			if !last {
				return nil, domainerror.NewBracketError(
					domainerror.ErrCodeUnboundedBracketNotLast,
					"only the top bracket may be open-ended",
					domainerror.ErrUnboundedBracketNotLast,
				)
			}
			continue
		}

		if !b.MaxIncome.GreaterThan(b.MinIncome) {
			return nil, domainerror.NewBracketError(
				domainerror.ErrCodeBracketTableOverlap,
				"bracket maximum income must exceed its minimum income",
				domainerror.ErrBracketTableOverlap,
			)
		}

		if last {
			return nil, domainerror.NewBracketError(
				domainerror.ErrCodeMissingTopBracket,
				"bracket table must end in an open-ended top bracket",
				domainerror.ErrMissingTopBracket,
			)
		}

		// Contiguity: the next bracket must begin exactly where this one ends.
		if !brackets[i+1].MinIncome.Equal(*b.MaxIncome) {
			return nil, domainerror.NewBracketError(
				domainerror.ErrCodeBracketTableGap,
				"brackets must be contiguous with no gaps or overlaps",
				domainerror.ErrBracketTableGap,
			)
		}
	}

	return &BracketTable{brackets: brackets}, nil
}

// Brackets returns the ordered brackets of the table.
func (t *BracketTable) Brackets() []*entity.TaxBracket {
	return t.brackets
}

// Apply computes the tax owed on taxableIncome by marginal-rate integration:
// the slice of income falling within each bracket is taxed at that bracket's
// rate and the contributions are summed. It never applies a single bracket's
// rate to the entire income.
//
// taxableIncome must not be negative; callers clamp deductions exceeding
// income to zero before calling, and a negative value is rejected rather than
// silently corrected.
func (t *BracketTable) Apply(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeNegativeTaxableIncome,
			"taxable income must not be negative",
			domainerror.ErrNegativeTaxableIncome,
		)
	}

	total := decimal.Zero
	for _, b := range t.brackets {
		upper := taxableIncome
		if b.MaxIncome != nil && b.MaxIncome.LessThan(upper) {
			upper = *b.MaxIncome
		}

		portion := upper.Sub(b.MinIncome)
		if portion.IsPositive() {
			total = total.Add(portion.Mul(b.Rate))
		}
	}

	return total, nil
}

// FlatRate computes the flat-rate fallback tax used when no bracket table is
// defined for a jurisdiction and year. The same negative-input contract as
// Apply holds.
func FlatRate(taxableIncome, rate decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeNegativeTaxableIncome,
			"taxable income must not be negative",
			domainerror.ErrNegativeTaxableIncome,
		)
	}
	return taxableIncome.Mul(rate), nil
}
