// Package taxanalysis contains the tax calculation pipeline use cases.
package taxanalysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
)

// RequestAdvisoryInput represents the input for requesting a risk advisory.
type RequestAdvisoryInput struct {
	OwnerID    uuid.UUID
	SnapshotID uuid.UUID
}

// RequestAdvisoryOutput represents the output of requesting a risk advisory.
type RequestAdvisoryOutput struct {
	Advisory *entity.RiskAdvisory
}

// RequestAdvisoryUseCase asks the external advisory service to comment on a
// stored snapshot and records the commentary. It runs strictly downstream of
// the tax pipeline: the calculator neither calls nor depends on it.
type RequestAdvisoryUseCase struct {
	getSnapshotUseCase *GetSnapshotUseCase
	advisoryService    adapter.AdvisoryService
	advisoryRepo       adapter.RiskAdvisoryRepository
}

// NewRequestAdvisoryUseCase creates a new RequestAdvisoryUseCase instance.
func NewRequestAdvisoryUseCase(
	getSnapshotUseCase *GetSnapshotUseCase,
	advisoryService adapter.AdvisoryService,
	advisoryRepo adapter.RiskAdvisoryRepository,
) *RequestAdvisoryUseCase {
	return &RequestAdvisoryUseCase{
		getSnapshotUseCase: getSnapshotUseCase,
		advisoryService:    advisoryService,
		advisoryRepo:       advisoryRepo,
	}
}

// Execute obtains and stores advisory commentary for the snapshot.
func (uc *RequestAdvisoryUseCase) Execute(ctx context.Context, input RequestAdvisoryInput) (*RequestAdvisoryOutput, error) {
	if uc.advisoryService == nil || !uc.advisoryService.IsAvailable() {
		return nil, domainerror.NewTaxAnalysisError(
			domainerror.ErrCodeAdvisoryUnavailable,
			"risk advisory service is not available",
			domainerror.ErrAdvisoryUnavailable,
		)
	}

	snapshotOut, err := uc.getSnapshotUseCase.Execute(ctx, GetSnapshotInput{
		OwnerID:    input.OwnerID,
		SnapshotID: input.SnapshotID,
	})
	if err != nil {
		return nil, err
	}

	result, err := uc.advisoryService.Review(ctx, snapshotOut.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("advisory review failed: %w", err)
	}

	advisory := entity.NewRiskAdvisory(
		snapshotOut.Snapshot.ID,
		input.OwnerID,
		result.Commentary,
		result.RiskFlags,
		result.Model,
	)

	if err := uc.advisoryRepo.Create(ctx, advisory); err != nil {
		return nil, fmt.Errorf("failed to store advisory: %w", err)
	}

	return &RequestAdvisoryOutput{Advisory: advisory}, nil
}
