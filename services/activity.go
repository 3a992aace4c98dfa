package services

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/utils"
)

// Cache key prefixes invalidated when new activity lands.
const (
	streakCachePrefix      = "cache:streak:"
	leaderboardCachePrefix = "cache:leaderboard:"
)

// ActivityStore is the single writer for per-user, per-day solve counters.
// Streaks and leaderboard scores are always derived from these rows; nothing
// else mutates streak state.
type ActivityStore struct {
	db *gorm.DB
}

// NewActivityStore creates an ActivityStore backed by db.
func NewActivityStore(db *gorm.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// RecordActivity increments the counter for (userID, day) by delta, creating
// the row when absent. The upsert is a single atomic statement so concurrent
// increments from rapid double-submissions never drop a count. Retries are the
// caller's concern; this store does not deduplicate them.
func (s *ActivityStore) RecordActivity(userID uint, day string, delta int) error {
	if _, err := time.ParseInLocation(models.DayLayout, day, time.Local); err != nil {
		return ErrInvalidDay
	}
	if delta < 1 {
		return ErrInvalidDelta
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", delta), "updated_at": time.Now()}),
	}).Create(&models.ActivityRecord{UserID: userID, Day: day, Count: delta}).Error
	if err != nil {
		return err
	}

	// Derived views are read-through caches only; drop them on write.
	utils.InvalidateByPrefix(streakCacheKey(userID))
	utils.InvalidateByPrefix(leaderboardCachePrefix)
	return nil
}

// GetActivity returns a user's activity records ordered ascending by day,
// optionally bounded by an inclusive [fromDay, toDay] range. Empty bounds mean
// unbounded. An unknown user yields an empty slice, not an error.
func (s *ActivityStore) GetActivity(userID uint, fromDay, toDay string) ([]models.ActivityRecord, error) {
	for _, d := range []string{fromDay, toDay} {
		if d == "" {
			continue
		}
		if _, err := time.ParseInLocation(models.DayLayout, d, time.Local); err != nil {
			return nil, ErrInvalidDay
		}
	}
	if fromDay != "" && toDay != "" && fromDay > toDay {
		return nil, ErrInvalidRange
	}

	q := s.db.Where("user_id = ?", userID)
	if fromDay != "" {
		q = q.Where("day >= ?", fromDay)
	}
	if toDay != "" {
		q = q.Where("day <= ?", toDay)
	}

	var records []models.ActivityRecord
	if err := q.Order("day ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetStreak computes the user's streak snapshot, serving from the redis
// read-through cache when possible. A cache miss recomputes from the full
// activity history; RecordActivity invalidates on every write.
func (s *ActivityStore) GetStreak(userID uint, today time.Time, policy StreakPolicy) (StreakSnapshot, error) {
	key := streakCacheKey(userID) + today.Format(models.DayLayout)
	if b, ok := utils.CacheGetBytes(key); ok {
		var snap StreakSnapshot
		if err := json.Unmarshal(b, &snap); err == nil {
			return snap, nil
		}
	}

	records, err := s.GetActivity(userID, "", "")
	if err != nil {
		return StreakSnapshot{}, err
	}
	snap := ComputeStreaks(records, today, policy)
	utils.CacheSetJSON(key, snap, 10*time.Minute)
	return snap, nil
}

func streakCacheKey(userID uint) string {
	return streakCachePrefix + strconv.FormatUint(uint64(userID), 10) + ":"
}
