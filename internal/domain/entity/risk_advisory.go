// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RiskAdvisory holds LLM-generated commentary about a stored tax analysis
// snapshot. It is advisory output from an external service; the tax
// calculation pipeline never reads it.
type RiskAdvisory struct {
	ID         uuid.UUID
	SnapshotID uuid.UUID
	OwnerID    uuid.UUID
	Commentary string
	RiskFlags  []string // Short machine-readable flags, e.g. "high-deduction-ratio"
	Model      string
	CreatedAt  time.Time
}

// NewRiskAdvisory creates a RiskAdvisory for a snapshot.
func NewRiskAdvisory(snapshotID, ownerID uuid.UUID, commentary string, riskFlags []string, model string) *RiskAdvisory {
	return &RiskAdvisory{
		ID:         uuid.New(),
		SnapshotID: snapshotID,
		OwnerID:    ownerID,
		Commentary: commentary,
		RiskFlags:  riskFlags,
		Model:      model,
		CreatedAt:  time.Now().UTC(),
	}
}
