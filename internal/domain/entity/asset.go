// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCategory represents the kind of balance bucket.
type AssetCategory string

const (
	AssetCategoryCash    AssetCategory = "Cash"
	AssetCategoryBank    AssetCategory = "Bank"
	AssetCategoryEWallet AssetCategory = "E-Wallet"
)

// IsValid checks if the asset category is one of the supported values.
func (c AssetCategory) IsValid() bool {
	switch c {
	case AssetCategoryCash, AssetCategoryBank, AssetCategoryEWallet:
		return true
	}
	return false
}

// Asset represents a named balance owned by a user, e.g. a bank account or e-wallet.
type Asset struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    AssetCategory
	Subcategory string
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAsset creates a new Asset with the given opening balance.
func NewAsset(userID uuid.UUID, category AssetCategory, subcategory string, amount decimal.Decimal) *Asset {
	now := time.Now().UTC()
	return &Asset{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
