// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
)

const (
	// DefaultPage is the default page number for listing.
	DefaultPage = 1
	// DefaultLimit is the default page size for listing.
	DefaultLimit = 20
	// MaxLimit is the maximum page size for listing.
	MaxLimit = 100
)

// ListSnapshotsInput represents the input for listing snapshots.
type ListSnapshotsInput struct {
	OwnerID uuid.UUID
	Page    int
	Limit   int
}

// ListSnapshotsOutput represents the output of listing snapshots.
type ListSnapshotsOutput struct {
	Result *entity.SnapshotListResult
}

// ListSnapshotsUseCase returns the snapshot history for an owner, newest
// first. Older snapshots are retained forever by this service; they are the
// audit trail of what was computed and when.
type ListSnapshotsUseCase struct {
	snapshotRepo adapter.SnapshotRepository
}

// NewListSnapshotsUseCase creates a new ListSnapshotsUseCase instance.
func NewListSnapshotsUseCase(snapshotRepo adapter.SnapshotRepository) *ListSnapshotsUseCase {
	return &ListSnapshotsUseCase{
		snapshotRepo: snapshotRepo,
	}
}

// Execute retrieves the snapshot history for the owner.
func (uc *ListSnapshotsUseCase) Execute(ctx context.Context, input ListSnapshotsInput) (*ListSnapshotsOutput, error) {
	if input.Page < 1 {
		input.Page = DefaultPage
	}
	if input.Limit < 1 {
		input.Limit = DefaultLimit
	}
	if input.Limit > MaxLimit {
		input.Limit = MaxLimit
	}

	result, err := uc.snapshotRepo.FindByOwner(ctx, input.OwnerID, adapter.RecordPagination{
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	return &ListSnapshotsOutput{Result: result}, nil
}
