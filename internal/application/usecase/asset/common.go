// Package asset contains asset-related use cases.
package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

func validateCategory(category string) (entity.AssetCategory, error) {
	c := entity.AssetCategory(category)
	if !c.IsValid() {
		return "", domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetCategory,
			"category must be one of Cash, Bank, E-Wallet",
			domainerror.ErrInvalidAssetCategory,
		)
	}
	return c, nil
}

func missingFields(message string) error {
	return domainerror.NewAssetError(
		domainerror.ErrCodeMissingAssetFields,
		message,
		domainerror.ErrMissingAssetFields,
	)
}

func findAsset(ctx context.Context, repo adapter.AssetRepository, userID, assetID uuid.UUID) (*entity.Asset, error) {
	asset, err := repo.FindByID(ctx, userID, assetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return nil, domainerror.NewAssetError(
				domainerror.ErrCodeAssetNotFound,
				"asset not found",
				domainerror.ErrAssetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return asset, nil
}
