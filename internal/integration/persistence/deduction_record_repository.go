// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
)

// deductionRecordRepository implements the adapter.DeductionRecordRepository interface.
type deductionRecordRepository struct {
	db *gorm.DB
}

// NewDeductionRecordRepository creates a new deduction record repository instance.
func NewDeductionRecordRepository(db *gorm.DB) adapter.DeductionRecordRepository {
	return &deductionRecordRepository{
		db: db,
	}
}

// Create creates a new deduction record in the database.
func (r *deductionRecordRepository) Create(ctx context.Context, record *entity.DeductionRecord) error {
	recordModel := model.DeductionRecordFromEntity(record)
	result := r.db.WithContext(ctx).Create(recordModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a deduction record by its ID.
func (r *deductionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DeductionRecord, error) {
	var recordModel model.DeductionRecordModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDeductionNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// FindByFilter retrieves deduction records based on filter criteria with pagination.
func (r *deductionRecordRepository) FindByFilter(ctx context.Context, filter adapter.DeductionFilter, pagination adapter.RecordPagination) (*entity.DeductionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.DeductionRecordModel{})

	query = query.Where("owner_id = ?", filter.OwnerID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}

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

	var recordModels []model.DeductionRecordModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.DeductionRecord, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}

	return &entity.DeductionListResult{
		Records:    records,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates an existing deduction record in the database.
func (r *deductionRecordRepository) Update(ctx context.Context, record *entity.DeductionRecord) error {
	recordModel := model.DeductionRecordFromEntity(record)
	result := r.db.WithContext(ctx).Save(recordModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a deduction record from the database.
func (r *deductionRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.DeductionRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetApprovedTotals sums the amounts of approved deduction records for an owner.
// The approved-only filter lives in the query itself: pending and rejected
// records must never leak into a tax calculation.
func (r *deductionRecordRepository) GetApprovedTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*adapter.DeductionTotals, error) {
	query := r.db.WithContext(ctx).
		Model(&model.DeductionRecordModel{}).
		Where("owner_id = ?", ownerID).
		Where("status = ?", string(entity.DeductionStatusApproved))

	if startDate != nil {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", endDate)
	}

	var totals struct {
		Total decimal.Decimal
		Count int64
	}
	result := query.
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.DeductionTotals{
		Total: totals.Total,
		Count: totals.Count,
	}, nil
}
