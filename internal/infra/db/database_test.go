package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet/ledger/config"
)

type probe struct {
	ID   uint
	Name string
}

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver:          DriverSQLite,
		URL:             "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	assert.True(t, database.HealthCheck())
	require.NoError(t, database.AutoMigrate(&probe{}))
	require.NoError(t, database.DB().Create(&probe{Name: "ok"}).Error)

	var count int64
	require.NoError(t, database.DB().Model(&probe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mongo"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
