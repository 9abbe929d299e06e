// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// RunTaxAnalysisRequest represents the request body for running a tax analysis.
type RunTaxAnalysisRequest struct {
	Jurisdiction string  `json:"jurisdiction" binding:"required,min=1,max=50"`
	TaxYear      int     `json:"tax_year" binding:"required"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
}

// TaxAnalysisSnapshotResponse represents a snapshot in API responses.
type TaxAnalysisSnapshotResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Jurisdiction     string    `json:"jurisdiction"`
	TaxYear          int       `json:"tax_year"`
	TotalIncome      string    `json:"total_income"`
	TotalDeductions  string    `json:"total_deductions"`
	TaxableIncome    string    `json:"taxable_income"`
	EstimatedTax     string    `json:"estimated_tax"`
	UsedFallbackRate bool      `json:"used_fallback_rate"`
	InputsHash       string    `json:"inputs_hash"`
	CreatedAt        time.Time `json:"created_at"`
}

// SnapshotListResponse represents the response for listing snapshots.
type SnapshotListResponse struct {
	Snapshots  []TaxAnalysisSnapshotResponse `json:"snapshots"`
	Pagination RecordPaginationResponse      `json:"pagination"`
}

// RiskAdvisoryResponse represents a risk advisory in API responses.
type RiskAdvisoryResponse struct {
	ID         string    `json:"id"`
	SnapshotID string    `json:"snapshot_id"`
	Commentary string    `json:"commentary"`
	RiskFlags  []string  `json:"risk_flags"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToTaxAnalysisSnapshotResponse converts a domain snapshot to its response DTO.
func ToTaxAnalysisSnapshotResponse(snapshot *entity.TaxAnalysisSnapshot) TaxAnalysisSnapshotResponse {
	return TaxAnalysisSnapshotResponse{
		ID:               snapshot.ID.String(),
		OwnerID:          snapshot.OwnerID.String(),
		Jurisdiction:     snapshot.Jurisdiction,
		TaxYear:          snapshot.TaxYear,
		TotalIncome:      snapshot.TotalIncome.String(),
		TotalDeductions:  snapshot.TotalDeductions.String(),
		TaxableIncome:    snapshot.TaxableIncome.String(),
		EstimatedTax:     snapshot.EstimatedTax.String(),
		UsedFallbackRate: snapshot.UsedFallbackRate,
		InputsHash:       snapshot.InputsHash,
		CreatedAt:        snapshot.CreatedAt,
	}
}

// ToSnapshotListResponse converts a SnapshotListResult to a SnapshotListResponse DTO.
func ToSnapshotListResponse(result *entity.SnapshotListResult) SnapshotListResponse {
	snapshots := make([]TaxAnalysisSnapshotResponse, len(result.Snapshots))
	for i, snapshot := range result.Snapshots {
		snapshots[i] = ToTaxAnalysisSnapshotResponse(snapshot)
	}

	return SnapshotListResponse{
		Snapshots: snapshots,
		Pagination: RecordPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}

// ToRiskAdvisoryResponse converts a domain RiskAdvisory to its response DTO.
func ToRiskAdvisoryResponse(advisory *entity.RiskAdvisory) RiskAdvisoryResponse {
	flags := advisory.RiskFlags
	if flags == nil {
		flags = []string{}
	}

	return RiskAdvisoryResponse{
		ID:         advisory.ID.String(),
		SnapshotID: advisory.SnapshotID.String(),
		Commentary: advisory.Commentary,
		RiskFlags:  flags,
		Model:      advisory.Model,
		CreatedAt:  advisory.CreatedAt,
	}
}
