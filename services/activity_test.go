package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/cppla/codeprep/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Problem{},
		&models.Submission{},
		&models.ActivityRecord{},
		&models.TopicProficiency{},
	))
	return db
}

func TestRecordActivityUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	store := NewActivityStore(db)

	require.NoError(t, store.RecordActivity(1, "2026-03-10", 1))
	require.NoError(t, store.RecordActivity(1, "2026-03-10", 1))
	require.NoError(t, store.RecordActivity(1, "2026-03-10", 3))

	var records []models.ActivityRecord
	require.NoError(t, db.Where("user_id = ?", 1).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-10", records[0].Day)
	assert.Equal(t, 5, records[0].Count)
}

func TestRecordActivitySeparatesUsersAndDays(t *testing.T) {
	db := newTestDB(t)
	store := NewActivityStore(db)

	require.NoError(t, store.RecordActivity(1, "2026-03-10", 1))
	require.NoError(t, store.RecordActivity(1, "2026-03-11", 1))
	require.NoError(t, store.RecordActivity(2, "2026-03-10", 1))

	var count int64
	require.NoError(t, db.Model(&models.ActivityRecord{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRecordActivityValidation(t *testing.T) {
	store := NewActivityStore(newTestDB(t))

	assert.ErrorIs(t, store.RecordActivity(1, "03/10/2026", 1), ErrInvalidDay)
	assert.ErrorIs(t, store.RecordActivity(1, "2026-3-10", 1), ErrInvalidDay)
	assert.ErrorIs(t, store.RecordActivity(1, "", 1), ErrInvalidDay)
	assert.ErrorIs(t, store.RecordActivity(1, "2026-03-10", 0), ErrInvalidDelta)
	assert.ErrorIs(t, store.RecordActivity(1, "2026-03-10", -2), ErrInvalidDelta)
}

func TestGetActivityRangeAndOrder(t *testing.T) {
	db := newTestDB(t)
	store := NewActivityStore(db)

	for _, d := range []string{"2026-03-12", "2026-03-09", "2026-03-10"} {
		require.NoError(t, store.RecordActivity(7, d, 1))
	}

	records, err := store.GetActivity(7, "", "")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-03-09", records[0].Day)
	assert.Equal(t, "2026-03-12", records[2].Day)

	records, err = store.GetActivity(7, "2026-03-10", "2026-03-11")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-10", records[0].Day)

	_, err = store.GetActivity(7, "2026-03-12", "2026-03-10")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = store.GetActivity(7, "bad", "")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestGetActivityUnknownUser(t *testing.T) {
	store := NewActivityStore(newTestDB(t))

	records, err := store.GetActivity(999, "", "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetStreakFromStore(t *testing.T) {
	db := newTestDB(t)
	store := NewActivityStore(db)

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	require.NoError(t, store.RecordActivity(3, "2026-03-08", 1))
	require.NoError(t, store.RecordActivity(3, "2026-03-09", 2))
	require.NoError(t, store.RecordActivity(3, "2026-03-10", 1))

	snap, err := store.GetStreak(3, today, StreakPolicy{})
	require.NoError(t, err)
	assert.Equal(t, StreakSnapshot{CurrentStreak: 3, LongestStreak: 3}, snap)
}
