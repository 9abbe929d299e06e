// Package adapter defines interfaces for external dependencies of the application layer.
package adapter

import (
	"context"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// TaxBracketRepository defines the interface for bracket reference data.
type TaxBracketRepository interface {
	// FindByJurisdictionYear returns the bracket table for the given
	// jurisdiction and tax year, ordered ascending by minimum income. It
	// returns domainerror.ErrBracketTableNotFound when no table is defined;
	// callers fall back to the configured flat rate.
	FindByJurisdictionYear(ctx context.Context, jurisdiction string, taxYear int) ([]*entity.TaxBracket, error)

	// ReplaceTable atomically replaces the bracket table for the given
	// jurisdiction and tax year. The brackets are assumed to be validated.
	ReplaceTable(ctx context.Context, jurisdiction string, taxYear int, brackets []*entity.TaxBracket) error
}
