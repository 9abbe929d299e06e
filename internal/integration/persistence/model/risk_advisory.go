// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fiscalops/backend/internal/domain/entity"
)

// RiskAdvisoryModel represents the risk_advisories table in the database.
type RiskAdvisoryModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SnapshotID uuid.UUID      `gorm:"type:uuid;not null;index"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Commentary string         `gorm:"type:text;not null"`
	RiskFlags  pq.StringArray `gorm:"type:text[]"`
	Model      string         `gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time      `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Snapshot *TaxAnalysisSnapshotModel `gorm:"foreignKey:SnapshotID;references:ID"`
}

// TableName returns the table name for the RiskAdvisoryModel.
func (RiskAdvisoryModel) TableName() string {
	return "risk_advisories"
}

// ToEntity converts a RiskAdvisoryModel to a domain RiskAdvisory entity.
func (m *RiskAdvisoryModel) ToEntity() *entity.RiskAdvisory {
	return &entity.RiskAdvisory{
		ID:         m.ID,
		SnapshotID: m.SnapshotID,
		OwnerID:    m.OwnerID,
		Commentary: m.Commentary,
		RiskFlags:  []string(m.RiskFlags),
		Model:      m.Model,
		CreatedAt:  m.CreatedAt,
	}
}

// RiskAdvisoryFromEntity creates a RiskAdvisoryModel from a domain RiskAdvisory entity.
func RiskAdvisoryFromEntity(advisory *entity.RiskAdvisory) *RiskAdvisoryModel {
	return &RiskAdvisoryModel{
		ID:         advisory.ID,
		SnapshotID: advisory.SnapshotID,
		OwnerID:    advisory.OwnerID,
		Commentary: advisory.Commentary,
		RiskFlags:  pq.StringArray(advisory.RiskFlags),
		Model:      advisory.Model,
		CreatedAt:  advisory.CreatedAt,
	}
}
