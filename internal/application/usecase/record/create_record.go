package record

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// CreateRecordInput represents the input for record creation.
type CreateRecordInput struct {
	UserID  uuid.UUID
	Payload RecordPayload
}

// CreateRecordOutput represents the output of record creation.
type CreateRecordOutput struct {
	Record    *entity.Record
	FeeRecord *entity.Record
}

// CreateRecordUseCase persists a record and applies its balance effect.
type CreateRecordUseCase struct {
	recordRepo adapter.RecordRepository
	validator  *Validator
	engine     *Engine
	transactor adapter.Transactor
	lock       adapter.LedgerLock
}

// NewCreateRecordUseCase creates a new CreateRecordUseCase instance.
func NewCreateRecordUseCase(
	recordRepo adapter.RecordRepository,
	assetRepo adapter.AssetRepository,
	transactor adapter.Transactor,
	lock adapter.LedgerLock,
) *CreateRecordUseCase {
	return &CreateRecordUseCase{
		recordRepo: recordRepo,
		validator:  NewValidator(assetRepo),
		engine:     NewEngine(assetRepo),
		transactor: transactor,
		lock:       lock,
	}
}

// Execute validates the payload and writes the record, its fee expense and the
// resulting balance changes in one transaction.
func (uc *CreateRecordUseCase) Execute(ctx context.Context, input CreateRecordInput) (*CreateRecordOutput, error) {
	release, err := acquireLedger(ctx, uc.lock, input.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	output := &CreateRecordOutput{}
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		resolved, err := uc.validator.Validate(ctx, input.UserID, input.Payload)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		record := &entity.Record{
			ID:          uuid.New(),
			UserID:      input.UserID,
			Note:        input.Payload.Note,
			Description: input.Payload.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		resolved.apply(record)

		if err := uc.recordRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}
		if err := uc.engine.Apply(ctx, input.UserID, Effect(record)); err != nil {
			return err
		}
		output.Record = record

		if record.IsTransfer() && resolved.Fee.IsPositive() {
			fee := entity.NewFeeRecord(record, resolved.Fee)
			if err := uc.recordRepo.Create(ctx, fee); err != nil {
				return fmt.Errorf("failed to create fee record: %w", err)
			}
			if err := uc.engine.Apply(ctx, input.UserID, Effect(fee)); err != nil {
				return err
			}
			output.FeeRecord = fee
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Record created",
		"userID", input.UserID,
		"recordID", output.Record.ID,
		"type", output.Record.Type,
		"amount", output.Record.Amount.String(),
	)

	return output, nil
}
