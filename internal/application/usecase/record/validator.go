// Package record contains the ledger use cases: record validation, the balance
// mutation engine and the query/grouping engine.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// RecordPayload is the client-supplied shape of a record. Pointer fields
// distinguish "absent" from zero.
type RecordPayload struct {
	Day         *int
	Month       *int
	Year        *int
	AssetID     string
	Type        string
	Category    string
	Amount      *decimal.Decimal
	Fee         *decimal.Decimal
	Note        string
	Description string
}

// ResolvedRecord is a payload whose references have been checked against storage.
type ResolvedRecord struct {
	Source   *entity.Asset
	Target   *entity.Asset
	Day      int
	Month    int
	Year     int
	Date     time.Time
	Type     entity.RecordType
	Category string
	Amount   decimal.Decimal
	Fee      decimal.Decimal
}

// Validator checks record payloads and resolves their asset references.
type Validator struct {
	assetRepo adapter.AssetRepository
}

// NewValidator creates a new Validator instance.
func NewValidator(assetRepo adapter.AssetRepository) *Validator {
	return &Validator{
		assetRepo: assetRepo,
	}
}

// Validate checks the payload and resolves its assets. Inside a transaction the
// resolved asset rows stay locked until commit.
func (v *Validator) Validate(ctx context.Context, userID uuid.UUID, payload RecordPayload) (*ResolvedRecord, error) {
	if payload.Day == nil || payload.Month == nil || payload.Year == nil ||
		payload.AssetID == "" || payload.Type == "" || payload.Category == "" || payload.Amount == nil {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMissingRecordFields,
			"day, month, year, assetId, type, category, and amount are required",
			domainerror.ErrMissingRecordFields,
		)
	}

	day, month, year := *payload.Day, *payload.Month, *payload.Year
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordDate,
			"day must be between 1 and 31 and month between 1 and 12",
			domainerror.ErrInvalidRecordDate,
		)
	}

	recordType := entity.RecordType(payload.Type)
	if !recordType.IsValid() {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordType,
			"type must be one of Expense, Income, Transfer",
			domainerror.ErrInvalidRecordType,
		)
	}

	fee := decimal.Zero
	if payload.Fee != nil {
		fee = *payload.Fee
	}
	if payload.Amount.IsNegative() || fee.IsNegative() {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeInvalidRecordAmount,
			"amount and fee must not be negative",
			domainerror.ErrInvalidRecordAmount,
		)
	}

	source, err := v.resolveAsset(ctx, userID, payload.AssetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeSourceAssetNotFound,
				"asset not found",
				domainerror.ErrAssetNotFound,
			)
		}
		return nil, err
	}

	resolved := &ResolvedRecord{
		Source:   source,
		Day:      day,
		Month:    month,
		Year:     year,
		Date:     entity.RecordDate(day, month, year),
		Type:     recordType,
		Category: payload.Category,
		Amount:   *payload.Amount,
		Fee:      fee,
	}

	if recordType != entity.RecordTypeTransfer {
		return resolved, nil
	}

	target, err := v.resolveAsset(ctx, userID, payload.Category)
	if err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeTargetAssetNotFound,
				"target asset not found",
				domainerror.ErrTargetAssetNotFound,
			)
		}
		return nil, err
	}

	if target.ID == source.ID {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeSelfTransfer,
			"transfer target must be a different asset",
			domainerror.ErrSelfTransfer,
		)
	}

	resolved.Target = target
	resolved.Category = target.Subcategory
	return resolved, nil
}

// resolveAsset parses and locks an asset reference. Unparseable ids are reported as missing.
func (v *Validator) resolveAsset(ctx context.Context, userID uuid.UUID, rawID string) (*entity.Asset, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domainerror.ErrAssetNotFound
	}

	asset, err := v.assetRepo.FindByIDForUpdate(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return asset, nil
}

// apply copies the resolved fields onto record.
func (r *ResolvedRecord) apply(record *entity.Record) {
	record.Day = r.Day
	record.Month = r.Month
	record.Year = r.Year
	record.Date = r.Date
	record.AssetID = r.Source.ID
	record.Asset = r.Source.Subcategory
	record.Type = r.Type
	record.Category = r.Category
	record.Amount = r.Amount
	record.TargetAssetID = nil
	if r.Target != nil {
		targetID := r.Target.ID
		record.TargetAssetID = &targetID
	}
}
