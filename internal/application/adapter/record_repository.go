// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/domain/entity"
)

// RecordFilter holds the storage-indexed criteria for listing records.
// At most one date criterion is applied, in the order Date, StartDate/EndDate, Month/Year, Year.
type RecordFilter struct {
	UserID    uuid.UUID
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Month     *int
	Year      *int
}

// RecordRepository defines the interface for record persistence operations.
type RecordRepository interface {
	// Create persists a new record.
	Create(ctx context.Context, record *entity.Record) error

	// FindByID retrieves a record owned by the user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Record, error)

	// FindByFilter retrieves the user's records matching the filter, ordered by date.
	FindByFilter(ctx context.Context, filter RecordFilter) ([]*entity.Record, error)

	// Update saves all mutable fields of an existing record.
	Update(ctx context.Context, record *entity.Record) error

	// Delete removes a record owned by the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteByUser removes every record owned by the user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
