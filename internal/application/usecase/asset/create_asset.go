package asset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// CreateAssetInput represents the input for asset creation.
type CreateAssetInput struct {
	UserID      uuid.UUID
	Category    string
	Subcategory string
	Amount      *decimal.Decimal
}

// CreateAssetOutput represents the output of asset creation.
type CreateAssetOutput struct {
	Asset *entity.Asset
}

// CreateAssetUseCase handles asset creation logic.
type CreateAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewCreateAssetUseCase creates a new CreateAssetUseCase instance.
func NewCreateAssetUseCase(assetRepo adapter.AssetRepository) *CreateAssetUseCase {
	return &CreateAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset creation. The opening amount may be negative, e.g. an overdrawn account.
func (uc *CreateAssetUseCase) Execute(ctx context.Context, input CreateAssetInput) (*CreateAssetOutput, error) {
	category, err := validateCategory(input.Category)
	if err != nil {
		return nil, err
	}

	subcategory := strings.TrimSpace(input.Subcategory)
	if subcategory == "" || input.Amount == nil {
		return nil, missingFields("subcategory and amount are required")
	}

	asset := entity.NewAsset(input.UserID, category, subcategory, *input.Amount)
	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	slog.Info("Asset created", "userID", input.UserID, "assetID", asset.ID, "category", asset.Category)

	return &CreateAssetOutput{Asset: asset}, nil
}
