// Package adapter defines interfaces for external dependencies of the application layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// SnapshotRepository defines the interface for tax analysis snapshot
// persistence. The store is append-only: there is deliberately no update
// operation, so a recompute can never erase the historical record of what
// was computed and when.
type SnapshotRepository interface {
	// Create inserts a new snapshot row.
	Create(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) error

	// FindByID retrieves a snapshot by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxAnalysisSnapshot, error)

	// FindByOwner retrieves snapshots for an owner, newest first, paginated.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, pagination RecordPagination) (*entity.SnapshotListResult, error)
}

// RiskAdvisoryRepository defines the interface for persisting advisory output.
type RiskAdvisoryRepository interface {
	// Create persists a new risk advisory.
	Create(ctx context.Context, advisory *entity.RiskAdvisory) error

	// FindBySnapshot retrieves the advisories recorded for a snapshot, newest first.
	FindBySnapshot(ctx context.Context, snapshotID uuid.UUID) ([]*entity.RiskAdvisory, error)
}
