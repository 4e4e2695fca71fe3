package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// GetAssetInput represents the input for fetching a single asset.
type GetAssetInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
}

// GetAssetOutput represents the output of fetching a single asset.
type GetAssetOutput struct {
	Asset *entity.Asset
}

// GetAssetUseCase handles single asset retrieval.
type GetAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewGetAssetUseCase creates a new GetAssetUseCase instance.
func NewGetAssetUseCase(assetRepo adapter.AssetRepository) *GetAssetUseCase {
	return &GetAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset retrieval.
func (uc *GetAssetUseCase) Execute(ctx context.Context, input GetAssetInput) (*GetAssetOutput, error) {
	asset, err := findAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}
	return &GetAssetOutput{Asset: asset}, nil
}
