// Package email queues, renders and delivers the account emails.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

var subjects = map[entity.EmailKind]string{
	entity.EmailVerifyAccount: "Verify your email - Dompet",
	entity.EmailResetPassword: "Reset your password - Dompet",
}

// Mailer turns account emails into queue jobs for the Worker.
type Mailer struct {
	queue adapter.EmailQueueRepository
}

// NewMailer creates a Mailer writing to queue.
func NewMailer(queue adapter.EmailQueueRepository) *Mailer {
	return &Mailer{queue: queue}
}

// Enqueue stores the email as a pending job.
func (m *Mailer) Enqueue(ctx context.Context, email adapter.AccountEmail) error {
	subject, ok := subjects[email.Kind]
	if !ok {
		return domainerror.NewEmailError(
			domainerror.ErrCodeUnknownEmailKind,
			fmt.Sprintf("no template for %q", email.Kind),
			domainerror.ErrUnknownEmailKind,
		)
	}

	job := entity.NewEmailJob(email.Kind, email.To, subject, map[string]string{
		entity.EmailDataRecipient: email.To,
		entity.EmailDataLink:      email.Link,
		entity.EmailDataValidFor:  describeValidity(email.ValidFor),
	})
	if err := m.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailEnqueue,
			fmt.Sprintf("failed to queue %s email", email.Kind),
			fmt.Errorf("%w: %v", domainerror.ErrEmailEnqueue, err),
		)
	}
	return nil
}

// describeValidity renders a link lifetime for email copy, e.g. "24 hours".
func describeValidity(d time.Duration) string {
	d = d.Round(time.Minute)
	switch {
	case d == time.Hour:
		return "1 hour"
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d == time.Minute:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
}

var _ adapter.AccountMailer = (*Mailer)(nil)
