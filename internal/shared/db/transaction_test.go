package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txRecord struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupTestDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(&txRecord{}))
	return conn
}

func TestRunInTransaction_CommitsOnSuccess(t *testing.T) {
	conn := setupTestDB(t)
	tm := NewTransactionManager(conn)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		tx := GetTxFromContext(ctx, conn)
		return tx.Create(&txRecord{Name: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	conn.Model(&txRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	conn := setupTestDB(t)
	tm := NewTransactionManager(conn)
	boom := errors.New("write failed")

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		tx := GetTxFromContext(ctx, conn)
		if err := tx.Create(&txRecord{Name: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	conn.Model(&txRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetTxFromContext_FallsBackToDefault(t *testing.T) {
	conn := setupTestDB(t)

	tx := GetTxFromContext(context.Background(), conn)
	require.NotNil(t, tx)
	assert.NoError(t, tx.Create(&txRecord{Name: "direct"}).Error)
}
