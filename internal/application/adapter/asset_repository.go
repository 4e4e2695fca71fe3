// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/domain/entity"
)

// AssetRepository defines the interface for asset persistence operations.
// Every lookup is scoped to the owning user.
type AssetRepository interface {
	// Create persists a new asset.
	Create(ctx context.Context, asset *entity.Asset) error

	// FindByID retrieves an asset owned by the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error)

	// FindByIDForUpdate retrieves an asset and locks its row for the surrounding transaction.
	FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error)

	// FindByUser retrieves all assets owned by the user, oldest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error)

	// Update saves category, subcategory and amount of an existing asset.
	Update(ctx context.Context, asset *entity.Asset) error

	// AdjustBalance adds delta to the asset's amount in a single statement.
	AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error

	// Delete removes an asset owned by the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteByUser removes every asset owned by the user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
