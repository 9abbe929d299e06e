// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// CreateIncomeRequest represents the request body for income record creation.
type CreateIncomeRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required,min=1,max=255"`
	Amount      string `json:"amount" binding:"required"`
}

// IncomeResponse represents a single income record in API responses.
type IncomeResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IncomeListResponse represents the response for listing income records.
type IncomeListResponse struct {
	Records    []IncomeResponse         `json:"records"`
	Pagination RecordPaginationResponse `json:"pagination"`
}

// ToIncomeResponse converts a domain IncomeRecord to an IncomeResponse DTO.
func ToIncomeResponse(record *entity.IncomeRecord) IncomeResponse {
	return IncomeResponse{
		ID:          record.ID.String(),
		OwnerID:     record.OwnerID.String(),
		Date:        record.Date.Format("2006-01-02"),
		Description: record.Description,
		Amount:      record.Amount.String(),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// ToIncomeListResponse converts an IncomeListResult to an IncomeListResponse DTO.
func ToIncomeListResponse(result *entity.IncomeListResult) IncomeListResponse {
	records := make([]IncomeResponse, len(result.Records))
	for i, record := range result.Records {
		records[i] = ToIncomeResponse(record)
	}

	return IncomeListResponse{
		Records: records,
		Pagination: RecordPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
