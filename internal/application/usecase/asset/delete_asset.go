package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// DeleteAssetInput represents the input for asset deletion.
type DeleteAssetInput struct {
	UserID  uuid.UUID
	AssetID uuid.UUID
}

// DeleteAssetUseCase handles asset deletion. Records that reference the asset are kept.
type DeleteAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewDeleteAssetUseCase creates a new DeleteAssetUseCase instance.
func NewDeleteAssetUseCase(assetRepo adapter.AssetRepository) *DeleteAssetUseCase {
	return &DeleteAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset deletion.
func (uc *DeleteAssetUseCase) Execute(ctx context.Context, input DeleteAssetInput) error {
	if err := uc.assetRepo.Delete(ctx, input.UserID, input.AssetID); err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return domainerror.NewAssetError(
				domainerror.ErrCodeAssetNotFound,
				"asset not found",
				domainerror.ErrAssetNotFound,
			)
		}
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	slog.Info("Asset deleted", "userID", input.UserID, "assetID", input.AssetID)
	return nil
}
