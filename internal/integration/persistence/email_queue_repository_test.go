package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet/ledger/internal/domain/entity"
	"github.com/dompet/ledger/internal/integration/persistence/model"
)

func TestEmailQueue_ClaimDue(t *testing.T) {
	db := newTestDB(t)
	queue := NewEmailQueueRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	due := entity.NewEmailJob(entity.EmailVerifyAccount, "a@example.com", "Verify", map[string]string{
		entity.EmailDataLink: "http://api.test/verify?token=t",
	})
	due.NextAttemptAt = now.Add(-time.Hour)
	later := entity.NewEmailJob(entity.EmailResetPassword, "b@example.com", "Reset", nil)
	later.NextAttemptAt = now.Add(time.Hour)
	require.NoError(t, queue.Create(ctx, due))
	require.NoError(t, queue.Create(ctx, later))

	claimed, err := queue.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, due.ID, claimed[0].ID)
	assert.Equal(t, entity.EmailStatusProcessing, claimed[0].Status)
	assert.Equal(t, "http://api.test/verify?token=t", claimed[0].Data[entity.EmailDataLink])

	again, err := queue.ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, again, "a claimed job must not be handed out twice")

	var row model.EmailQueueModel
	require.NoError(t, db.First(&row, "id = ?", due.ID).Error)
	assert.Equal(t, string(entity.EmailStatusProcessing), row.Status)
}

func TestEmailQueue_SaveAndPurge(t *testing.T) {
	db := newTestDB(t)
	queue := NewEmailQueueRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	old := entity.NewEmailJob(entity.EmailVerifyAccount, "old@example.com", "Verify", nil)
	old.Delivered("msg-old", now.Add(-48*time.Hour))
	fresh := entity.NewEmailJob(entity.EmailVerifyAccount, "new@example.com", "Verify", nil)
	fresh.Delivered("msg-new", now)
	failed := entity.NewEmailJob(entity.EmailResetPassword, "bad@example.com", "Reset", nil)
	failed.Failed(errors.New("422 invalid to"), true, now.Add(-48*time.Hour))

	for _, job := range []*entity.EmailJob{old, fresh, failed} {
		require.NoError(t, queue.Create(ctx, job))
	}

	fresh.LastError = "noted"
	require.NoError(t, queue.Save(ctx, fresh))

	deleted, err := queue.PurgeSent(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var rows []model.EmailQueueModel
	require.NoError(t, db.Order("recipient ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "bad@example.com", rows[0].Recipient)
	assert.Equal(t, "new@example.com", rows[1].Recipient)
	assert.Equal(t, "noted", rows[1].LastError)
}
