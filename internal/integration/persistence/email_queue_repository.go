// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	"github.com/dompet/ledger/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	return conn(ctx, r.db).Create(model.EmailQueueModelFromEntity(job)).Error
}

// ClaimDue selects due jobs and flips them to processing in one transaction.
// On postgres, rows held by another worker are skipped.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var claimed []*entity.EmailJob

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("status = ? AND next_attempt_at <= ?", entity.EmailStatusPending, now).
			Order("next_attempt_at ASC").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}

		var rows []model.EmailQueueModel
		if err := query.Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		err := tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Update("status", entity.EmailStatusProcessing).Error
		if err != nil {
			return err
		}

		claimed = make([]*entity.EmailJob, len(rows))
		for i := range rows {
			claimed[i] = rows[i].ToEntity()
			claimed[i].Claim()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Save writes the whole job row.
func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	return conn(ctx, r.db).Save(model.EmailQueueModelFromEntity(job)).Error
}

// PurgeSent deletes sent jobs that finished before cutoff.
func (r *emailQueueRepository) PurgeSent(ctx context.Context, cutoff time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("status = ? AND finished_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
