// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind          string    `gorm:"type:varchar(50);not null"`
	Recipient     string    `gorm:"type:varchar(255);not null;index"`
	Subject       string    `gorm:"type:varchar(255);not null"`
	Data          string    `gorm:"type:jsonb;not null;default:'{}'"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due,priority:1"`
	Attempts      int       `gorm:"not null;default:0"`
	MaxAttempts   int       `gorm:"not null;default:3"`
	LastError     string    `gorm:"type:text"`
	ProviderID    string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"not null"`
	NextAttemptAt time.Time `gorm:"not null;index:idx_email_queue_due,priority:2"`
	FinishedAt    sql.NullTime
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row into a domain EmailJob.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]string{}
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			slog.Warn("Unreadable email data", "error", err, "jobID", m.ID)
		}
	}

	job := &entity.EmailJob{
		ID:            m.ID,
		Kind:          entity.EmailKind(m.Kind),
		Recipient:     m.Recipient,
		Subject:       m.Subject,
		Data:          data,
		Status:        entity.EmailStatus(m.Status),
		Attempts:      m.Attempts,
		MaxAttempts:   m.MaxAttempts,
		LastError:     m.LastError,
		ProviderID:    m.ProviderID,
		CreatedAt:     m.CreatedAt,
		NextAttemptAt: m.NextAttemptAt,
	}
	if m.FinishedAt.Valid {
		finished := m.FinishedAt.Time
		job.FinishedAt = &finished
	}
	return job
}

// EmailQueueModelFromEntity converts a domain EmailJob into its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data, err := json.Marshal(job.Data)
	if err != nil {
		data = []byte("{}")
	}

	m := &EmailQueueModel{
		ID:            job.ID,
		Kind:          string(job.Kind),
		Recipient:     job.Recipient,
		Subject:       job.Subject,
		Data:          string(data),
		Status:        string(job.Status),
		Attempts:      job.Attempts,
		MaxAttempts:   job.MaxAttempts,
		LastError:     job.LastError,
		ProviderID:    job.ProviderID,
		CreatedAt:     job.CreatedAt,
		NextAttemptAt: job.NextAttemptAt,
	}
	if job.FinishedAt != nil {
		m.FinishedAt = sql.NullTime{Time: *job.FinishedAt, Valid: true}
	}
	return m
}
