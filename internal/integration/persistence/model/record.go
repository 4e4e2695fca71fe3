// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/domain/entity"
)

// RecordModel represents the records table in the database.
type RecordModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Day           int             `gorm:"not null"`
	Month         int             `gorm:"not null;index:idx_records_month_year"`
	Year          int             `gorm:"not null;index:idx_records_month_year;index"`
	Date          time.Time       `gorm:"not null;index"`
	AssetID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Asset         string          `gorm:"type:varchar(100);not null"`
	Type          string          `gorm:"type:varchar(10);not null"`
	Category      string          `gorm:"type:varchar(100);not null"`
	TargetAssetID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Note          string          `gorm:"type:text"`
	Description   string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecordModel.
func (RecordModel) TableName() string {
	return "records"
}

// ToEntity converts a RecordModel to a domain Record entity.
func (m *RecordModel) ToEntity() *entity.Record {
	return &entity.Record{
		ID:            m.ID,
		UserID:        m.UserID,
		Day:           m.Day,
		Month:         m.Month,
		Year:          m.Year,
		Date:          m.Date.UTC(),
		AssetID:       m.AssetID,
		Asset:         m.Asset,
		Type:          entity.RecordType(m.Type),
		Category:      m.Category,
		TargetAssetID: m.TargetAssetID,
		Amount:        m.Amount,
		Note:          m.Note,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// RecordFromEntity creates a RecordModel from a domain Record entity.
func RecordFromEntity(record *entity.Record) *RecordModel {
	return &RecordModel{
		ID:            record.ID,
		UserID:        record.UserID,
		Day:           record.Day,
		Month:         record.Month,
		Year:          record.Year,
		Date:          record.Date,
		AssetID:       record.AssetID,
		Asset:         record.Asset,
		Type:          string(record.Type),
		Category:      record.Category,
		TargetAssetID: record.TargetAssetID,
		Amount:        record.Amount,
		Note:          record.Note,
		Description:   record.Description,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
