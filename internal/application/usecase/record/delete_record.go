package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
)

// DeleteRecordInput represents the input for record deletion.
type DeleteRecordInput struct {
	UserID   uuid.UUID
	RecordID uuid.UUID
}

// DeleteRecordUseCase removes a record and reverses its balance effect.
type DeleteRecordUseCase struct {
	recordRepo adapter.RecordRepository
	engine     *Engine
	transactor adapter.Transactor
	lock       adapter.LedgerLock
}

// NewDeleteRecordUseCase creates a new DeleteRecordUseCase instance.
func NewDeleteRecordUseCase(
	recordRepo adapter.RecordRepository,
	assetRepo adapter.AssetRepository,
	transactor adapter.Transactor,
	lock adapter.LedgerLock,
) *DeleteRecordUseCase {
	return &DeleteRecordUseCase{
		recordRepo: recordRepo,
		engine:     NewEngine(assetRepo),
		transactor: transactor,
		lock:       lock,
	}
}

// Execute performs the record deletion.
func (uc *DeleteRecordUseCase) Execute(ctx context.Context, input DeleteRecordInput) error {
	release, err := acquireLedger(ctx, uc.lock, input.UserID)
	if err != nil {
		return err
	}
	defer release()

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := findRecord(ctx, uc.recordRepo, input.UserID, input.RecordID)
		if err != nil {
			return err
		}

		if err := uc.engine.Apply(ctx, input.UserID, Effect(record).Negate()); err != nil {
			return err
		}
		if err := uc.recordRepo.Delete(ctx, input.UserID, record.ID); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Record deleted", "userID", input.UserID, "recordID", input.RecordID)
	return nil
}
