package asset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// UpdateAssetInput represents the input for asset update. All fields are required.
type UpdateAssetInput struct {
	UserID      uuid.UUID
	AssetID     uuid.UUID
	Category    string
	Subcategory string
	Amount      *decimal.Decimal
}

// UpdateAssetOutput represents the output of asset update.
type UpdateAssetOutput struct {
	Asset *entity.Asset
}

// UpdateAssetUseCase handles asset update logic.
type UpdateAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewUpdateAssetUseCase creates a new UpdateAssetUseCase instance.
func NewUpdateAssetUseCase(assetRepo adapter.AssetRepository) *UpdateAssetUseCase {
	return &UpdateAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset update. The amount is overwritten as given; records
// are not replayed.
func (uc *UpdateAssetUseCase) Execute(ctx context.Context, input UpdateAssetInput) (*UpdateAssetOutput, error) {
	subcategory := strings.TrimSpace(input.Subcategory)
	if input.Category == "" || subcategory == "" || input.Amount == nil {
		return nil, missingFields("category, subcategory, and amount are required")
	}

	category, err := validateCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeNegativeAssetAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAssetAmount,
		)
	}

	asset, err := findAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}

	asset.Category = category
	asset.Subcategory = subcategory
	asset.Amount = *input.Amount
	asset.UpdatedAt = time.Now().UTC()

	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	slog.Info("Asset updated", "userID", input.UserID, "assetID", asset.ID)

	return &UpdateAssetOutput{Asset: asset}, nil
}
