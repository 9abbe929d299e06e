// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/fiscalops/backend/internal/domain/entity"
)

// BracketRowRequest represents one bracket row of an imported table.
type BracketRowRequest struct {
	MinIncome string  `json:"min_income" binding:"required"`
	MaxIncome *string `json:"max_income,omitempty"` // Absent = unbounded top bracket
	Rate      string  `json:"rate" binding:"required"`
}

// ImportBracketTableRequest represents the request body for bracket table import.
type ImportBracketTableRequest struct {
	Brackets []BracketRowRequest `json:"brackets" binding:"required,min=1"`
}

// BracketResponse represents a single tax bracket in API responses.
type BracketResponse struct {
	MinIncome string  `json:"min_income"`
	MaxIncome *string `json:"max_income,omitempty"`
	Rate      string  `json:"rate"`
}

// BracketTableResponse represents a full bracket table in API responses.
type BracketTableResponse struct {
	Jurisdiction string            `json:"jurisdiction"`
	TaxYear      int               `json:"tax_year"`
	Brackets     []BracketResponse `json:"brackets"`
}

// ToBracketTableResponse converts bracket entities to a BracketTableResponse DTO.
func ToBracketTableResponse(jurisdiction string, taxYear int, brackets []*entity.TaxBracket) BracketTableResponse {
	rows := make([]BracketResponse, len(brackets))
	for i, bracket := range brackets {
		rows[i] = BracketResponse{
			MinIncome: bracket.MinIncome.String(),
			Rate:      bracket.Rate.String(),
		}
		if bracket.MaxIncome != nil {
			maxStr := bracket.MaxIncome.String()
			rows[i].MaxIncome = &maxStr
		}
	}

	return BracketTableResponse{
		Jurisdiction: jurisdiction,
		TaxYear:      taxYear,
		Brackets:     rows,
	}
}
