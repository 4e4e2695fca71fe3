// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/persistence/model"
)

// recordRepository implements the adapter.RecordRepository interface.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) adapter.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// Create persists a new record.
func (r *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	return conn(ctx, r.db).Create(model.RecordFromEntity(record)).Error
}

// FindByID retrieves a record owned by the user.
func (r *recordRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Record, error) {
	var recordModel model.RecordModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecordNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// FindByFilter retrieves the user's records matching the first applicable date criterion.
func (r *recordRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Record, error) {
	query := conn(ctx, r.db).Where("user_id = ?", filter.UserID)

	switch {
	case filter.Date != nil:
		query = query.Where("date = ?", *filter.Date)
	case filter.StartDate != nil && filter.EndDate != nil:
		query = query.Where("date >= ? AND date <= ?", *filter.StartDate, *filter.EndDate)
	case filter.Month != nil && filter.Year != nil:
		query = query.Where("month = ? AND year = ?", *filter.Month, *filter.Year)
	case filter.Year != nil:
		query = query.Where("year = ?", *filter.Year)
	}

	var recordModels []model.RecordModel
	result := query.Order("date ASC, created_at ASC").Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.Record, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}
	return records, nil
}

// Update saves all mutable fields of an existing record.
func (r *recordRepository) Update(ctx context.Context, record *entity.Record) error {
	result := conn(ctx, r.db).
		Model(&model.RecordModel{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]any{
			"day":             record.Day,
			"month":           record.Month,
			"year":            record.Year,
			"date":            record.Date,
			"asset_id":        record.AssetID,
			"asset":           record.Asset,
			"type":            string(record.Type),
			"category":        record.Category,
			"target_asset_id": record.TargetAssetID,
			"amount":          record.Amount,
			"note":            record.Note,
			"description":     record.Description,
			"updated_at":      record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

// Delete removes a record owned by the user.
func (r *recordRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.RecordModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecordNotFound
	}
	return nil
}

// DeleteByUser removes every record owned by the user.
func (r *recordRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&model.RecordModel{}, "user_id = ?", userID).Error
}
