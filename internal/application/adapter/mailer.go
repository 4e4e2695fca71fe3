// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/dompet/ledger/internal/domain/entity"
)

// OutgoingEmail is a rendered message ready for the provider.
type OutgoingEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// MailProvider hands rendered messages to an external email service.
type MailProvider interface {
	// Deliver returns the provider's message id.
	Deliver(ctx context.Context, msg OutgoingEmail) (string, error)
}

// AccountEmail is an email carrying a one-time account link.
type AccountEmail struct {
	Kind     entity.EmailKind
	To       string
	Link     string
	ValidFor time.Duration
}

// AccountMailer queues account emails for background delivery.
type AccountMailer interface {
	Enqueue(ctx context.Context, email AccountEmail) error
}
