package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// GroupByCategory is the groupBy value that buckets assets by category.
const GroupByCategory = "category"

// ListAssetsInput represents the input for listing assets.
type ListAssetsInput struct {
	UserID  uuid.UUID
	GroupBy string
}

// ListAssetsOutput holds either the flat list or, when grouped, the per-category buckets.
type ListAssetsOutput struct {
	Assets  []*entity.Asset
	Grouped map[entity.AssetCategory][]*entity.Asset
}

// ListAssetsUseCase handles asset listing.
type ListAssetsUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewListAssetsUseCase creates a new ListAssetsUseCase instance.
func NewListAssetsUseCase(assetRepo adapter.AssetRepository) *ListAssetsUseCase {
	return &ListAssetsUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset listing. Unknown groupBy values return the flat list.
func (uc *ListAssetsUseCase) Execute(ctx context.Context, input ListAssetsInput) (*ListAssetsOutput, error) {
	assets, err := uc.assetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	output := &ListAssetsOutput{Assets: assets}
	if input.GroupBy == GroupByCategory {
		output.Grouped = make(map[entity.AssetCategory][]*entity.Asset)
		for _, a := range assets {
			output.Grouped[a.Category] = append(output.Grouped[a.Category], a)
		}
	}
	return output, nil
}
