package record

import (
	"context"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// GetRecordInput represents the input for fetching a single record.
type GetRecordInput struct {
	UserID   uuid.UUID
	RecordID uuid.UUID
}

// GetRecordOutput represents the output of fetching a single record.
type GetRecordOutput struct {
	Record *entity.Record
}

// GetRecordUseCase handles single record retrieval.
type GetRecordUseCase struct {
	recordRepo adapter.RecordRepository
}

// NewGetRecordUseCase creates a new GetRecordUseCase instance.
func NewGetRecordUseCase(recordRepo adapter.RecordRepository) *GetRecordUseCase {
	return &GetRecordUseCase{
		recordRepo: recordRepo,
	}
}

// Execute returns the record or a not-found RecordError.
func (uc *GetRecordUseCase) Execute(ctx context.Context, input GetRecordInput) (*GetRecordOutput, error) {
	record, err := findRecord(ctx, uc.recordRepo, input.UserID, input.RecordID)
	if err != nil {
		return nil, err
	}
	return &GetRecordOutput{Record: record}, nil
}
