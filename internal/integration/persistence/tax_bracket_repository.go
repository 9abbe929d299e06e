// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fiscalops/backend/internal/application/adapter"
	"github.com/fiscalops/backend/internal/domain/entity"
	domainerror "github.com/fiscalops/backend/internal/domain/error"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
)

// taxBracketRepository implements the adapter.TaxBracketRepository interface.
type taxBracketRepository struct {
	db *gorm.DB
}

// NewTaxBracketRepository creates a new tax bracket repository instance.
func NewTaxBracketRepository(db *gorm.DB) adapter.TaxBracketRepository {
	return &taxBracketRepository{
		db: db,
	}
}

// FindByJurisdictionYear retrieves the bracket table for a jurisdiction and
// tax year, ordered ascending by minimum income. An empty result reports
// ErrBracketTableNotFound so callers fall back to the flat rate.
func (r *taxBracketRepository) FindByJurisdictionYear(ctx context.Context, jurisdiction string, taxYear int) ([]*entity.TaxBracket, error) {
	var bracketModels []model.TaxBracketModel
	result := r.db.WithContext(ctx).
		Where("jurisdiction = ? AND tax_year = ?", jurisdiction, taxYear).
		Order("min_income ASC").
		Find(&bracketModels)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(bracketModels) == 0 {
		return nil, domainerror.ErrBracketTableNotFound
	}

	brackets := make([]*entity.TaxBracket, len(bracketModels))
	for i, bm := range bracketModels {
		brackets[i] = bm.ToEntity()
	}
	return brackets, nil
}

// ReplaceTable atomically replaces the bracket table for a jurisdiction and
// tax year. Delete and insert run in one database transaction so readers
// never observe a partial table.
func (r *taxBracketRepository) ReplaceTable(ctx context.Context, jurisdiction string, taxYear int, brackets []*entity.TaxBracket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("jurisdiction = ? AND tax_year = ?", jurisdiction, taxYear).
			Delete(&model.TaxBracketModel{}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, bracket := range brackets {
			bracketModel := model.TaxBracketFromEntity(bracket)
			if bracketModel.ID == uuid.Nil {
				bracketModel.ID = uuid.New()
			}
			if bracketModel.CreatedAt.IsZero() {
				bracketModel.CreatedAt = now
			}
			bracketModel.UpdatedAt = now
			if err := tx.Create(bracketModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
