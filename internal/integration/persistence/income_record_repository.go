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

// incomeRecordRepository implements the adapter.IncomeRecordRepository interface.
type incomeRecordRepository struct {
	db *gorm.DB
}

// NewIncomeRecordRepository creates a new income record repository instance.
func NewIncomeRecordRepository(db *gorm.DB) adapter.IncomeRecordRepository {
	return &incomeRecordRepository{
		db: db,
	}
}

// Create creates a new income record in the database.
func (r *incomeRecordRepository) Create(ctx context.Context, record *entity.IncomeRecord) error {
	recordModel := model.IncomeRecordFromEntity(record)
	result := r.db.WithContext(ctx).Create(recordModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an income record by its ID.
func (r *incomeRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.IncomeRecord, error) {
	var recordModel model.IncomeRecordModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrIncomeNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// FindByFilter retrieves income records based on filter criteria with pagination.
func (r *incomeRecordRepository) FindByFilter(ctx context.Context, filter adapter.IncomeFilter, pagination adapter.RecordPagination) (*entity.IncomeListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.IncomeRecordModel{})

	query = query.Where("owner_id = ?", filter.OwnerID)

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

	var recordModels []model.IncomeRecordModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.IncomeRecord, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}

	return &entity.IncomeListResult{
		Records:    records,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Delete removes an income record from the database.
func (r *incomeRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.IncomeRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetTotals sums the amounts of income records for an owner within the
// optional date range. Summation happens in SQL so decimals never round-trip
// through float64.
func (r *incomeRecordRepository) GetTotals(ctx context.Context, ownerID uuid.UUID, startDate, endDate *time.Time) (*adapter.IncomeTotals, error) {
	query := r.db.WithContext(ctx).
		Model(&model.IncomeRecordModel{}).
		Where("owner_id = ?", ownerID)

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

	return &adapter.IncomeTotals{
		Total: totals.Total,
		Count: totals.Count,
	}, nil
}
