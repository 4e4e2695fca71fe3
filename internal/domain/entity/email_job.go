// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailKind selects the template an account email is rendered from.
type EmailKind string

const (
	EmailVerifyAccount EmailKind = "verify_email"
	EmailResetPassword EmailKind = "password_reset"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// Keys of EmailJob.Data read by the templates.
const (
	EmailDataRecipient = "recipient"
	EmailDataLink      = "link"
	EmailDataValidFor  = "valid_for"
)

const defaultEmailAttempts = 3

// emailBackoff is the wait before each retry. The last entry repeats.
var emailBackoff = []time.Duration{time.Minute, 5 * time.Minute, 15 * time.Minute}

// EmailJob is one queued account email and its delivery state.
type EmailJob struct {
	ID            uuid.UUID
	Kind          EmailKind
	Recipient     string
	Subject       string
	Data          map[string]string
	Status        EmailStatus
	Attempts      int
	MaxAttempts   int
	LastError     string
	ProviderID    string
	CreatedAt     time.Time
	NextAttemptAt time.Time
	FinishedAt    *time.Time
}

// NewEmailJob creates a pending job that is due immediately.
func NewEmailJob(kind EmailKind, recipient, subject string, data map[string]string) *EmailJob {
	if data == nil {
		data = map[string]string{}
	}
	now := time.Now().UTC()
	return &EmailJob{
		ID:            uuid.New(),
		Kind:          kind,
		Recipient:     recipient,
		Subject:       subject,
		Data:          data,
		Status:        EmailStatusPending,
		MaxAttempts:   defaultEmailAttempts,
		CreatedAt:     now,
		NextAttemptAt: now,
	}
}

// Claim marks the job as taken by a worker.
func (j *EmailJob) Claim() {
	j.Status = EmailStatusProcessing
}

// Delivered records a successful hand-off to the provider.
func (j *EmailJob) Delivered(providerID string, at time.Time) {
	j.Status = EmailStatusSent
	j.ProviderID = providerID
	j.LastError = ""
	j.FinishedAt = &at
}

// Failed records an attempt that did not go through. The job goes back to
// pending with a backoff unless the failure is permanent or the attempts are
// used up.
func (j *EmailJob) Failed(err error, permanent bool, at time.Time) {
	j.Attempts++
	j.LastError = err.Error()

	if permanent || j.Attempts >= j.MaxAttempts {
		j.Status = EmailStatusFailed
		j.FinishedAt = &at
		return
	}

	j.Status = EmailStatusPending
	j.NextAttemptAt = at.Add(retryDelay(j.Attempts))
}

func retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(emailBackoff) {
		attempt = len(emailBackoff)
	}
	return emailBackoff[attempt-1]
}
