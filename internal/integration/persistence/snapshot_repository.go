// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
)

// snapshotRepository implements the adapter.SnapshotRepository interface.
// The table is append-only: this type has no update or delete methods, and
// none may be added. History is the point.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

// Create inserts a new snapshot row.
func (r *snapshotRepository) Create(ctx context.Context, snapshot *entity.TaxAnalysisSnapshot) error {
	snapshotModel := model.TaxAnalysisSnapshotFromEntity(snapshot)
	result := r.db.WithContext(ctx).Create(snapshotModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a snapshot by its ID.
func (r *snapshotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxAnalysisSnapshot, error) {
	var snapshotModel model.TaxAnalysisSnapshotModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&snapshotModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSnapshotNotFound
		}
		return nil, result.Error
	}
	return snapshotModel.ToEntity(), nil
}

// FindByOwner retrieves snapshots for an owner, newest first, paginated.
func (r *snapshotRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, pagination adapter.RecordPagination) (*entity.SnapshotListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TaxAnalysisSnapshotModel{}).
		Where("owner_id = ?", ownerID)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var snapshotModels []model.TaxAnalysisSnapshotModel
	result := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.TaxAnalysisSnapshot, len(snapshotModels))
	for i, sm := range snapshotModels {
		snapshots[i] = sm.ToEntity()
	}

	return &entity.SnapshotListResult{
		Snapshots:  snapshots,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}
