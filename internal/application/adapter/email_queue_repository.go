// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/dompet/ledger/internal/domain/entity"
)

// EmailQueueRepository stores account emails until the worker delivers them.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue moves up to limit pending jobs due at now into processing and
	// returns them. A job is handed to one caller only.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Save writes the job's delivery state back.
	Save(ctx context.Context, job *entity.EmailJob) error

	// PurgeSent deletes sent jobs that finished before cutoff.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}
