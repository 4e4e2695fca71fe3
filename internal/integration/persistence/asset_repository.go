// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/persistence/model"
)

// assetRepository implements the adapter.AssetRepository interface.
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository instance.
func NewAssetRepository(db *gorm.DB) adapter.AssetRepository {
	return &assetRepository{
		db: db,
	}
}

// Create persists a new asset.
func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	return conn(ctx, r.db).Create(model.AssetFromEntity(asset)).Error
}

// FindByID retrieves an asset owned by the user.
func (r *assetRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	return r.find(conn(ctx, r.db), userID, id)
}

// FindByIDForUpdate retrieves an asset and, on postgres, locks the row until the transaction ends.
// SQLite serializes writers on its own and has no row-level locks.
func (r *assetRepository) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	return r.find(r.locking(ctx), userID, id)
}

// FindByUser retrieves all assets owned by the user, oldest first.
func (r *assetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	var assetModels []model.AssetModel
	result := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	assets := make([]*entity.Asset, len(assetModels))
	for i, am := range assetModels {
		assets[i] = am.ToEntity()
	}
	return assets, nil
}

// Update saves category, subcategory and amount of an existing asset.
func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	result := conn(ctx, r.db).
		Model(&model.AssetModel{}).
		Where("id = ? AND user_id = ?", asset.ID, asset.UserID).
		Updates(map[string]any{
			"category":    string(asset.Category),
			"subcategory": asset.Subcategory,
			"amount":      asset.Amount,
			"updated_at":  asset.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAssetNotFound
	}
	return nil
}

// AdjustBalance adds delta to the asset's amount. The read and the write share
// the caller's transaction, and the read holds the row lock on postgres.
func (r *assetRepository) AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	asset, err := r.find(r.locking(ctx), userID, id)
	if err != nil {
		return err
	}

	result := conn(ctx, r.db).
		Model(&model.AssetModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"amount":     asset.Amount.Add(delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAssetNotFound
	}
	return nil
}

// Delete removes an asset owned by the user.
func (r *assetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.AssetModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAssetNotFound
	}
	return nil
}

// DeleteByUser removes every asset owned by the user.
func (r *assetRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&model.AssetModel{}, "user_id = ?", userID).Error
}

func (r *assetRepository) find(db *gorm.DB, userID, id uuid.UUID) (*entity.Asset, error) {
	var assetModel model.AssetModel
	result := db.Where("id = ? AND user_id = ?", id, userID).First(&assetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAssetNotFound
		}
		return nil, result.Error
	}
	return assetModel.ToEntity(), nil
}

func (r *assetRepository) locking(ctx context.Context) *gorm.DB {
	db := conn(ctx, r.db)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
