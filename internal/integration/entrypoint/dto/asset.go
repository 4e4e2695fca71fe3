// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/domain/entity"
)

// AssetRequest is the body of asset create and update.
type AssetRequest struct {
	Category    string           `json:"category" binding:"required,oneof=Cash Bank E-Wallet"`
	Subcategory string           `json:"subcategory" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Amount      string    `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToAssetResponse converts an Asset entity to its response form.
func ToAssetResponse(a *entity.Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID.String(),
		Category:    string(a.Category),
		Subcategory: a.Subcategory,
		Amount:      a.Amount.StringFixed(2),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAssetListResponse converts a slice of assets, never returning nil.
func ToAssetListResponse(assets []*entity.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, ToAssetResponse(a))
	}
	return out
}

// ToGroupedAssetResponse converts per-category buckets keyed by category name.
func ToGroupedAssetResponse(grouped map[entity.AssetCategory][]*entity.Asset) map[string][]AssetResponse {
	out := make(map[string][]AssetResponse, len(grouped))
	for category, assets := range grouped {
		out[string(category)] = ToAssetListResponse(assets)
	}
	return out
}
