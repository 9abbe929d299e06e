// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// CreateDeductionRequest represents the request body for deduction record creation.
type CreateDeductionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      string  `json:"amount" binding:"required"`
	TaxCodeID   *string `json:"tax_code_id,omitempty"`
}

// ReviewDeductionRequest represents the request body for the approve/reject decision.
type ReviewDeductionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

// DeductionResponse represents a single deduction record in API responses.
type DeductionResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	TaxCodeID   *string    `json:"tax_code_id,omitempty"`
	Status      string     `json:"status"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecordPaginationResponse represents pagination information in API responses.
type RecordPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// DeductionListResponse represents the response for listing deduction records.
type DeductionListResponse struct {
	Records    []DeductionResponse      `json:"records"`
	Pagination RecordPaginationResponse `json:"pagination"`
}

// ToDeductionResponse converts a domain DeductionRecord to a DeductionResponse DTO.
func ToDeductionResponse(record *entity.DeductionRecord) DeductionResponse {
	response := DeductionResponse{
		ID:          record.ID.String(),
		OwnerID:     record.OwnerID.String(),
		Date:        record.Date.Format("2006-01-02"),
		Description: record.Description,
		Amount:      record.Amount.String(),
		Status:      string(record.Status),
		ReviewedAt:  record.ReviewedAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}

	if record.TaxCodeID != nil {
		taxCodeIDStr := record.TaxCodeID.String()
		response.TaxCodeID = &taxCodeIDStr
	}

	return response
}

// ToDeductionListResponse converts a DeductionListResult to a DeductionListResponse DTO.
func ToDeductionListResponse(result *entity.DeductionListResult) DeductionListResponse {
	records := make([]DeductionResponse, len(result.Records))
	for i, record := range result.Records {
		records[i] = ToDeductionResponse(record)
	}

	return DeductionListResponse{
		Records: records,
		Pagination: RecordPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
