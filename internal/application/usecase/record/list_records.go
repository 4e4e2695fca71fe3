package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
)

// ListRecordsInput represents the input for listing records.
type ListRecordsInput struct {
	UserID uuid.UUID
	Query  RawQuery
}

// ListRecordsOutput holds records grouped by month number, then by "day-month-year".
type ListRecordsOutput struct {
	Groups map[int]map[string][]*entity.Record
	Total  int
}

// ListRecordsUseCase handles filtered, grouped record listing.
type ListRecordsUseCase struct {
	recordRepo adapter.RecordRepository
}

// NewListRecordsUseCase creates a new ListRecordsUseCase instance.
func NewListRecordsUseCase(recordRepo adapter.RecordRepository) *ListRecordsUseCase {
	return &ListRecordsUseCase{
		recordRepo: recordRepo,
	}
}

// Execute performs the record listing.
func (uc *ListRecordsUseCase) Execute(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error) {
	query, err := ParseQuery(input.Query)
	if err != nil {
		return nil, err
	}

	records, err := uc.recordRepo.FindByFilter(ctx, query.Filter(input.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	matched := make([]*entity.Record, 0, len(records))
	for _, r := range records {
		if query.Match(r) {
			matched = append(matched, r)
		}
	}

	return &ListRecordsOutput{
		Groups: Group(matched),
		Total:  len(matched),
	}, nil
}
