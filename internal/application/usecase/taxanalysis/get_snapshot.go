// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

// GetSnapshotInput represents the input for fetching a single snapshot.
type GetSnapshotInput struct {
	OwnerID    uuid.UUID
	SnapshotID uuid.UUID
}

// GetSnapshotOutput represents the output of fetching a single snapshot.
type GetSnapshotOutput struct {
	Snapshot *entity.TaxAnalysisSnapshot
}

// GetSnapshotUseCase retrieves one snapshot, scoped to its owner.
type GetSnapshotUseCase struct {
	snapshotRepo adapter.SnapshotRepository
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
func NewGetSnapshotUseCase(snapshotRepo adapter.SnapshotRepository) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{
		snapshotRepo: snapshotRepo,
	}
}

// Execute retrieves the snapshot, verifying ownership. A snapshot belonging
// to another owner reports not-found rather than leaking its existence.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	snapshot, err := uc.snapshotRepo.FindByID(ctx, input.SnapshotID)
	if err != nil {
		return nil, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeSnapshotNotFound,
			"tax analysis snapshot not found",
			domainerror.ErrSnapshotNotFound,
		)
	}

	if snapshot.OwnerID != input.OwnerID {
		return nil, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeSnapshotNotFound,
			"tax analysis snapshot not found",
			domainerror.ErrSnapshotNotFound,
		)
	}

	return &GetSnapshotOutput{Snapshot: snapshot}, nil
}
