package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/models"
)

func TestRankPercentile(t *testing.T) {
	assert.Equal(t, 100.0, RankPercentile(1, 1))
	assert.Equal(t, 100.0, RankPercentile(1, 10))
	assert.Equal(t, 10.0, RankPercentile(10, 10))
	assert.Equal(t, 50.0, RankPercentile(2, 2))
	assert.Equal(t, 83.3, RankPercentile(2, 6))
	assert.Equal(t, 0.0, RankPercentile(0, 10))
	assert.Equal(t, 0.0, RankPercentile(11, 10))
	assert.Equal(t, 0.0, RankPercentile(1, 0))
}

func TestValidPeriodAndCategory(t *testing.T) {
	assert.True(t, ValidPeriod("all"))
	assert.True(t, ValidPeriod("month"))
	assert.True(t, ValidPeriod("week"))
	assert.False(t, ValidPeriod("year"))
	assert.False(t, ValidPeriod(""))

	assert.True(t, ValidCategory("all"))
	assert.True(t, ValidCategory("Beginner"))
	assert.True(t, ValidCategory("advanced"))
	assert.False(t, ValidCategory("expert"))
}

func seedUser(t *testing.T, db *gorm.DB, username, level string) uint {
	t.Helper()
	u := models.User{Username: username, ExperienceLevel: level}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func seedActivity(t *testing.T, db *gorm.DB, userID uint, day string, count int) {
	t.Helper()
	require.NoError(t, db.Create(&models.ActivityRecord{UserID: userID, Day: day, Count: count}).Error)
}

func TestGetLeaderboardRanking(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	opts := LeaderboardOptions{StreakWeight: 5}

	// alice: 4 problems, 2-day streak ending today -> 4 + 10 = 14
	alice := seedUser(t, db, "alice", models.LevelAdvanced)
	seedActivity(t, db, alice, "2026-03-09", 2)
	seedActivity(t, db, alice, "2026-03-10", 2)

	// bob: 3 problems, no current streak -> 3 + 0 = 3
	bob := seedUser(t, db, "bob", models.LevelBeginner)
	seedActivity(t, db, bob, "2026-03-01", 3)

	// carol: nothing at all, excluded
	seedUser(t, db, "carol", models.LevelBeginner)

	entries, err := svc.GetLeaderboard(today, PeriodAll, CategoryAll, opts)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, alice, entries[0].UserID)
	assert.Equal(t, 14, entries[0].Score)
	assert.Equal(t, 4, entries[0].TotalProblems)
	assert.Equal(t, 2, entries[0].CurrentStreak)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 100.0, entries[0].Percentile)
	assert.True(t, entries[0].IsTopPerformer)

	assert.Equal(t, bob, entries[1].UserID)
	assert.Equal(t, 3, entries[1].Score)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 50.0, entries[1].Percentile)
	assert.False(t, entries[1].IsTopPerformer)
}

func TestGetLeaderboardTiesKeepDiscoveryOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	opts := LeaderboardOptions{StreakWeight: 5}

	first := seedUser(t, db, "first", models.LevelBeginner)
	second := seedUser(t, db, "second", models.LevelBeginner)
	seedActivity(t, db, first, "2026-03-01", 7)
	seedActivity(t, db, second, "2026-03-02", 7)

	entries, err := svc.GetLeaderboard(today, PeriodAll, CategoryAll, opts)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Equal scores: the earlier-created user keeps the better rank.
	assert.Equal(t, first, entries[0].UserID)
	assert.Equal(t, second, entries[1].UserID)
	assert.Equal(t, entries[0].Score, entries[1].Score)
}

func TestGetLeaderboardWindowBoundsProblemsNotStreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	opts := LeaderboardOptions{StreakWeight: 5}

	// Activity on each of the last 10 days; only the trailing 7 count for the
	// weekly problem total, but the streak term stays all-time.
	u := seedUser(t, db, "dora", models.LevelIntermediate)
	for i := 0; i < 10; i++ {
		seedActivity(t, db, u, today.AddDate(0, 0, -i).Format(models.DayLayout), 1)
	}

	entries, err := svc.GetLeaderboard(today, PeriodWeek, CategoryAll, opts)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].TotalProblems)
	assert.Equal(t, 10, entries[0].CurrentStreak)
	assert.Equal(t, 7+10*5, entries[0].Score)
}

func TestGetLeaderboardCategoryFiltersByLevel(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	opts := LeaderboardOptions{StreakWeight: 5}

	beginner := seedUser(t, db, "beg", models.LevelBeginner)
	advanced := seedUser(t, db, "adv", models.LevelAdvanced)
	seedActivity(t, db, beginner, "2026-03-01", 2)
	seedActivity(t, db, advanced, "2026-03-01", 2)

	entries, err := svc.GetLeaderboard(today, PeriodAll, "beginner", opts)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, beginner, entries[0].UserID)
	assert.Equal(t, 100.0, entries[0].Percentile)
}

func TestGetLeaderboardValidation(t *testing.T) {
	svc := NewLeaderboardService(newTestDB(t))
	today := time.Now()

	_, err := svc.GetLeaderboard(today, "decade", CategoryAll, LeaderboardOptions{})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.GetLeaderboard(today, PeriodAll, "wizard", LeaderboardOptions{})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	svc := NewLeaderboardService(newTestDB(t))

	entries, err := svc.GetLeaderboard(time.Now(), PeriodAll, CategoryAll, LeaderboardOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
