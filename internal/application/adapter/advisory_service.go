// Package adapter defines interfaces for external dependencies of the application layer.
package adapter

import (
	"context"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// AdvisoryResult holds the output of an external risk advisory review.
type AdvisoryResult struct {
	Commentary string
	RiskFlags  []string
	Model      string
}

// AdvisoryService defines the interface for the external LLM-backed risk
// advisory. It is strictly downstream of the tax pipeline: it reads stored
// snapshots and produces commentary, and the calculator never depends on it.
type AdvisoryService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// Review analyzes a stored snapshot and returns advisory commentary.
	Review(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) (*AdvisoryResult, error)
}

// EmailSender defines the interface for sending notification emails.
type EmailSender interface {
	// Send delivers a single email. Implementations are best-effort; the tax
	// pipeline never fails because a notification could not be delivered.
	Send(ctx context.Context, to, subject, htmlBody string) error
}
