// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
)

// riskAdvisoryRepository implements the adapter.RiskAdvisoryRepository interface.
type riskAdvisoryRepository struct {
	db *gorm.DB
}

// NewRiskAdvisoryRepository creates a new risk advisory repository instance.
func NewRiskAdvisoryRepository(db *gorm.DB) adapter.RiskAdvisoryRepository {
	return &riskAdvisoryRepository{
		db: db,
	}
}

// Create persists a new risk advisory.
func (r *riskAdvisoryRepository) Create(ctx context.Context, advisory *entity.RiskAdvisory) error {
	advisoryModel := model.RiskAdvisoryFromEntity(advisory)
	result := r.db.WithContext(ctx).Create(advisoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindBySnapshot retrieves the advisories recorded for a snapshot, newest first.
func (r *riskAdvisoryRepository) FindBySnapshot(ctx context.Context, snapshotID uuid.UUID) ([]*entity.RiskAdvisory, error) {
	var advisoryModels []model.RiskAdvisoryModel
	result := r.db.WithContext(ctx).
		Where("snapshot_id = ?", snapshotID).
		Order("created_at DESC").
		Find(&advisoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	advisories := make([]*entity.RiskAdvisory, len(advisoryModels))
	for i, am := range advisoryModels {
		advisories[i] = am.ToEntity()
	}
	return advisories, nil
}
