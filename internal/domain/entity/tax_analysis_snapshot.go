// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxAnalysisSnapshot is an immutable record of one tax calculation run:
// the aggregated inputs alongside the computed result. Snapshots are
// append-only; a recompute inserts a new row and never touches older ones,
// so the audit history of what was computed, from what, and when is retained.
type TaxAnalysisSnapshot struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Jurisdiction     string
	TaxYear          int
	TotalIncome      decimal.Decimal
	TotalDeductions  decimal.Decimal
	TaxableIncome    decimal.Decimal
	EstimatedTax     decimal.Decimal
	UsedFallbackRate bool   // True when no bracket table was defined and the flat fallback rate applied
	InputsHash       string // sha256 over the canonical inputs, for reproducibility
	CreatedAt        time.Time
}

// NewTaxAnalysisSnapshot creates a snapshot for a completed calculation run.
func NewTaxAnalysisSnapshot(
	ownerID uuid.UUID,
	jurisdiction string,
	taxYear int,
	totalIncome decimal.Decimal,
	totalDeductions decimal.Decimal,
	taxableIncome decimal.Decimal,
	estimatedTax decimal.Decimal,
	usedFallbackRate bool,
	inputsHash string,
) *TaxAnalysisSnapshot {
	return &TaxAnalysisSnapshot{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Jurisdiction:     jurisdiction,
		TaxYear:          taxYear,
		TotalIncome:      totalIncome,
		TotalDeductions:  totalDeductions,
		TaxableIncome:    taxableIncome,
		EstimatedTax:     estimatedTax,
		UsedFallbackRate: usedFallbackRate,
		InputsHash:       inputsHash,
		CreatedAt:        time.Now().UTC(),
	}
}

// SnapshotListResult represents the result of listing snapshots.
type SnapshotListResult struct {
	Snapshots  []*TaxAnalysisSnapshot
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
