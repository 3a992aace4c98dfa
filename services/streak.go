package services

import (
	"sort"
	"time"

	"github.com/cppla/codeprep/models"
)

// StreakPolicy controls how the current streak treats an inactive "today".
// With RequireToday false (the default) a run ending yesterday still counts,
// because today has not finished and the streak is not yet broken.
type StreakPolicy struct {
	RequireToday bool
}

// StreakSnapshot is derived on demand from raw activity records and never persisted.
type StreakSnapshot struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// ComputeStreaks derives the current and longest run of calendar-consecutive
// active days from a user's activity records. Records with zero count are
// ignored; ordering of the input does not matter.
func ComputeStreaks(records []models.ActivityRecord, today time.Time, policy StreakPolicy) StreakSnapshot {
	active := make(map[string]bool, len(records))
	days := make([]time.Time, 0, len(records))
	for i := range records {
		if records[i].Count <= 0 {
			continue
		}
		t := records[i].DayTime()
		if t.IsZero() || active[records[i].Day] {
			continue
		}
		active[records[i].Day] = true
		days = append(days, t)
	}
	if len(days) == 0 {
		return StreakSnapshot{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Longest: one forward pass over sorted days, extending runs on exact
	// next-calendar-day steps.
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Current: walk backward from today. An inactive today is tolerated only
	// when policy allows anchoring on yesterday.
	todayMid := midnight(today)
	anchor := todayMid
	if !active[dayKey(todayMid)] {
		yesterday := todayMid.AddDate(0, 0, -1)
		if policy.RequireToday || !active[dayKey(yesterday)] {
			return StreakSnapshot{CurrentStreak: 0, LongestStreak: longest}
		}
		anchor = yesterday
	}
	current := 0
	for d := anchor; active[dayKey(d)]; d = d.AddDate(0, 0, -1) {
		current++
	}

	return StreakSnapshot{CurrentStreak: current, LongestStreak: longest}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(models.DayLayout)
}
