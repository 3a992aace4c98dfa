package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cppla/codeprep/models"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(models.DayLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func recordsFor(days ...string) []models.ActivityRecord {
	out := make([]models.ActivityRecord, 0, len(days))
	for _, d := range days {
		out = append(out, models.ActivityRecord{UserID: 1, Day: d, Count: 1})
	}
	return out
}

func TestComputeStreaks(t *testing.T) {
	today := day("2026-03-10")

	tests := []struct {
		name    string
		records []models.ActivityRecord
		policy  StreakPolicy
		want    StreakSnapshot
	}{
		{
			name: "no activity",
			want: StreakSnapshot{},
		},
		{
			name:    "single day today",
			records: recordsFor("2026-03-10"),
			want:    StreakSnapshot{CurrentStreak: 1, LongestStreak: 1},
		},
		{
			name:    "run ending today",
			records: recordsFor("2026-03-08", "2026-03-09", "2026-03-10"),
			want:    StreakSnapshot{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name:    "run ending yesterday still counts by default",
			records: recordsFor("2026-03-07", "2026-03-08", "2026-03-09"),
			want:    StreakSnapshot{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name:    "run ending yesterday scores zero when today is required",
			records: recordsFor("2026-03-07", "2026-03-08", "2026-03-09"),
			policy:  StreakPolicy{RequireToday: true},
			want:    StreakSnapshot{CurrentStreak: 0, LongestStreak: 3},
		},
		{
			name:    "gap before today resets current but keeps longest",
			records: recordsFor("2026-03-06", "2026-03-07", "2026-03-08", "2026-03-10"),
			want:    StreakSnapshot{CurrentStreak: 1, LongestStreak: 3},
		},
		{
			name:    "run ended two days ago scores zero",
			records: recordsFor("2026-03-06", "2026-03-07", "2026-03-08"),
			want:    StreakSnapshot{CurrentStreak: 0, LongestStreak: 3},
		},
		{
			name:    "unordered input with duplicates",
			records: recordsFor("2026-03-10", "2026-03-08", "2026-03-09", "2026-03-09"),
			want:    StreakSnapshot{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name: "zero count days are inactive",
			records: []models.ActivityRecord{
				{UserID: 1, Day: "2026-03-09", Count: 1},
				{UserID: 1, Day: "2026-03-10", Count: 0},
			},
			want: StreakSnapshot{CurrentStreak: 1, LongestStreak: 1},
		},
		{
			name:    "longest run lives in the past",
			records: recordsFor("2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-03-10"),
			want:    StreakSnapshot{CurrentStreak: 1, LongestStreak: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreaks(tt.records, today, tt.policy)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.LongestStreak, got.CurrentStreak)
		})
	}
}

func TestComputeStreaksMonthBoundary(t *testing.T) {
	got := ComputeStreaks(recordsFor("2026-02-27", "2026-02-28", "2026-03-01"), day("2026-03-01"), StreakPolicy{})
	assert.Equal(t, StreakSnapshot{CurrentStreak: 3, LongestStreak: 3}, got)
}

func TestComputeStreaksIgnoresTimeOfDay(t *testing.T) {
	lateToday := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	got := ComputeStreaks(recordsFor("2026-03-09", "2026-03-10"), lateToday, StreakPolicy{})
	assert.Equal(t, StreakSnapshot{CurrentStreak: 2, LongestStreak: 2}, got)
}
