package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// acquireLedger takes the user's ledger lock, translating contention into a RecordError.
func acquireLedger(ctx context.Context, lock adapter.LedgerLock, userID uuid.UUID) (func(), error) {
	release, err := lock.Acquire(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLedgerBusy) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeLedgerBusy,
				"another change to this ledger is in progress, try again",
				domainerror.ErrLedgerBusy,
			)
		}
		return nil, fmt.Errorf("failed to acquire ledger lock: %w", err)
	}
	return release, nil
}

// findRecord loads a record owned by the user.
func findRecord(ctx context.Context, repo adapter.RecordRepository, userID, recordID uuid.UUID) (*entity.Record, error) {
	record, err := repo.FindByID(ctx, userID, recordID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeRecordNotFound,
				"record not found",
				domainerror.ErrRecordNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return record, nil
}
