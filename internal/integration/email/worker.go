// Package email queues, renders and delivers the account emails.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/email/templates"
)

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval    time.Duration
	BatchSize       int
	CleanupInterval time.Duration
	// Retention is how long sent jobs are kept. Zero keeps them forever.
	Retention time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:    5 * time.Second,
		BatchSize:       10,
		CleanupInterval: time.Hour,
		Retention:       30 * 24 * time.Hour,
	}
}

// Worker drains the email queue into a MailProvider.
type Worker struct {
	queue    adapter.EmailQueueRepository
	provider adapter.MailProvider
	renderer *templates.Renderer
	config   WorkerConfig
	now      func() time.Time
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, provider adapter.MailProvider, renderer *templates.Renderer, config WorkerConfig) *Worker {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultWorkerConfig().BatchSize
	}
	return &Worker{
		queue:    queue,
		provider: provider,
		renderer: renderer,
		config:   config,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start polls the queue until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"pollInterval", w.config.PollInterval,
		"batchSize", w.config.BatchSize,
		"retention", w.config.Retention,
	)

	poll := time.NewTicker(w.config.PollInterval)
	defer poll.Stop()

	var purge <-chan time.Time
	if w.config.Retention > 0 && w.config.CleanupInterval > 0 {
		ticker := time.NewTicker(w.config.CleanupInterval)
		defer ticker.Stop()
		purge = ticker.C
	}

	w.ProcessNow(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker stopped")
			return
		case <-poll.C:
			w.ProcessNow(ctx)
		case <-purge:
			w.purgeSent(ctx)
		}
	}
}

// ProcessNow claims one batch of due jobs and delivers it.
func (w *Worker) ProcessNow(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, w.now(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With("jobID", job.ID, "kind", job.Kind, "to", job.Recipient)

	providerID, err := w.send(ctx, job)
	if err != nil {
		job.Failed(err, domainerror.IsPermanentEmailError(err), w.now())
		if job.Status == entity.EmailStatusFailed {
			logger.Warn("Email given up", "attempts", job.Attempts, "error", err)
		} else {
			logger.Info("Email delivery will be retried", "attempts", job.Attempts, "nextAttemptAt", job.NextAttemptAt, "error", err)
		}
	} else {
		job.Delivered(providerID, w.now())
		logger.Info("Email sent", "providerID", providerID)
	}

	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to save email job", "error", err)
	}
}

func (w *Worker) send(ctx context.Context, job *entity.EmailJob) (string, error) {
	html, text, err := w.renderer.Render(job.Kind, job.Data)
	if err != nil {
		return "", err
	}
	return w.provider.Deliver(ctx, adapter.OutgoingEmail{
		To:      job.Recipient,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
}

func (w *Worker) purgeSent(ctx context.Context) {
	deleted, err := w.queue.PurgeSent(ctx, w.now().Add(-w.config.Retention))
	if err != nil {
		slog.Error("Failed to purge sent emails", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Purged sent emails", "count", deleted)
	}
}
