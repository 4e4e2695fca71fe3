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

// UpdateRecordInput represents the input for record update.
// Fee is ignored: the fee expense exists only as a create-time side record.
type UpdateRecordInput struct {
	UserID   uuid.UUID
	RecordID uuid.UUID
	Payload  RecordPayload
}

// UpdateRecordOutput represents the output of record update.
type UpdateRecordOutput struct {
	Record *entity.Record
}

// UpdateRecordUseCase replaces a record and moves balances from its old effect to its new one.
type UpdateRecordUseCase struct {
	recordRepo adapter.RecordRepository
	validator  *Validator
	engine     *Engine
	transactor adapter.Transactor
	lock       adapter.LedgerLock
}

// NewUpdateRecordUseCase creates a new UpdateRecordUseCase instance.
func NewUpdateRecordUseCase(
	recordRepo adapter.RecordRepository,
	assetRepo adapter.AssetRepository,
	transactor adapter.Transactor,
	lock adapter.LedgerLock,
) *UpdateRecordUseCase {
	return &UpdateRecordUseCase{
		recordRepo: recordRepo,
		validator:  NewValidator(assetRepo),
		engine:     NewEngine(assetRepo),
		transactor: transactor,
		lock:       lock,
	}
}

// Execute performs the record update.
func (uc *UpdateRecordUseCase) Execute(ctx context.Context, input UpdateRecordInput) (*UpdateRecordOutput, error) {
	release, err := acquireLedger(ctx, uc.lock, input.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *entity.Record
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		old, err := findRecord(ctx, uc.recordRepo, input.UserID, input.RecordID)
		if err != nil {
			return err
		}

		payload := input.Payload
		payload.Fee = nil
		resolved, err := uc.validator.Validate(ctx, input.UserID, payload)
		if err != nil {
			return err
		}

		next := *old
		resolved.apply(&next)
		if payload.Note != "" {
			next.Note = payload.Note
		}
		if payload.Description != "" {
			next.Description = payload.Description
		}
		next.UpdatedAt = time.Now().UTC()

		if err := uc.engine.Apply(ctx, input.UserID, Transition(old, &next)); err != nil {
			return err
		}
		if err := uc.recordRepo.Update(ctx, &next); err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Record updated",
		"userID", input.UserID,
		"recordID", updated.ID,
		"type", updated.Type,
		"amount", updated.Amount.String(),
	)

	return &UpdateRecordOutput{Record: updated}, nil
}
