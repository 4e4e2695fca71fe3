// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/domain/entity"
)

// AssetModel represents the assets table in the database.
type AssetModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    string          `gorm:"type:varchar(20);not null"`
	Subcategory string          `gorm:"type:varchar(100);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AssetModel.
func (AssetModel) TableName() string {
	return "assets"
}

// ToEntity converts an AssetModel to a domain Asset entity.
func (m *AssetModel) ToEntity() *entity.Asset {
	return &entity.Asset{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    entity.AssetCategory(m.Category),
		Subcategory: m.Subcategory,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// AssetFromEntity creates an AssetModel from a domain Asset entity.
func AssetFromEntity(asset *entity.Asset) *AssetModel {
	return &AssetModel{
		ID:          asset.ID,
		UserID:      asset.UserID,
		Category:    string(asset.Category),
		Subcategory: asset.Subcategory,
		Amount:      asset.Amount,
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
}
