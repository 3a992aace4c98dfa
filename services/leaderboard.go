package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/codeprep/models"
)

// Leaderboard periods and categories accepted by GetLeaderboard.
const (
	PeriodAll   = "all"
	PeriodMonth = "month"
	PeriodWeek  = "week"

	CategoryAll = "all"
)

// LeaderboardEntry is one ranked row, computed fresh per request.
type LeaderboardEntry struct {
	UserID         uint    `json:"user_id"`
	Username       string  `json:"username"`
	AvatarURL      string  `json:"avatar_url"`
	Score          int     `json:"score"`
	TotalProblems  int     `json:"total_problems"`
	CurrentStreak  int     `json:"current_streak"`
	Rank           int     `json:"rank"`
	Percentile     float64 `json:"percentile"`
	IsTopPerformer bool    `json:"is_top_performer"`
}

// LeaderboardOptions carries the policy knobs for scoring.
type LeaderboardOptions struct {
	StreakWeight int
	Streak       StreakPolicy
}

// LeaderboardService aggregates all users' activity into a ranked board. It is
// read-only over shared state and tolerates slightly stale data.
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a LeaderboardService backed by db.
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// ValidPeriod reports whether period is one of all/month/week.
func ValidPeriod(period string) bool {
	switch period {
	case PeriodAll, PeriodMonth, PeriodWeek:
		return true
	}
	return false
}

// ValidCategory reports whether category is "all" or an experience level.
func ValidCategory(category string) bool {
	if category == CategoryAll {
		return true
	}
	return models.ValidExperienceLevel(canonicalLevel(category))
}

// GetLeaderboard computes the ranked board for a period window and category.
// The window bounds only the problem total; the streak term deliberately stays
// all-time (see /config/policies), which makes weekly scores partially
// non-local to the week.
func (s *LeaderboardService) GetLeaderboard(today time.Time, period, category string, opts LeaderboardOptions) ([]LeaderboardEntry, error) {
	if !ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if opts.StreakWeight <= 0 {
		opts.StreakWeight = 5
	}

	// Users ordered by id give the stable discovery order that breaks ties.
	var users []models.User
	q := s.db.Order("id ASC")
	if category != CategoryAll {
		q = q.Where("experience_level = ?", canonicalLevel(category))
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []LeaderboardEntry{}, nil
	}

	// One pass over all activity rows, bucketed per user. The streak needs the
	// full history regardless of the requested window.
	var records []models.ActivityRecord
	if err := s.db.Order("user_id ASC, day ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint][]models.ActivityRecord, len(users))
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}

	windowStart := windowStartDay(today, period)

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		history := byUser[u.ID]
		total := 0
		for _, rec := range history {
			if windowStart == "" || rec.Day >= windowStart {
				total += rec.Count
			}
		}
		snap := ComputeStreaks(history, today, opts.Streak)
		score := total + snap.CurrentStreak*opts.StreakWeight
		if score == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:        u.ID,
			Username:      u.Username,
			AvatarURL:     u.AvatarURL,
			Score:         score,
			TotalProblems: total,
			CurrentStreak: snap.CurrentStreak,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })

	n := len(entries)
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Percentile = RankPercentile(i+1, n)
		entries[i].IsTopPerformer = entries[i].Percentile >= 90.0
	}
	return entries, nil
}

// RankPercentile converts a 1-based rank among n ranked users into a
// percentile rounded to one decimal place.
func RankPercentile(rank, n int) float64 {
	if n <= 0 || rank < 1 || rank > n {
		return 0
	}
	p := float64(n-rank+1) / float64(n) * 100
	return math.Round(p*10) / 10
}

// windowStartDay returns the inclusive first day key of the trailing window,
// or "" for the unbounded all-time period.
func windowStartDay(today time.Time, period string) string {
	switch period {
	case PeriodWeek:
		return midnight(today).AddDate(0, 0, -6).Format(models.DayLayout)
	case PeriodMonth:
		return midnight(today).AddDate(0, 0, -29).Format(models.DayLayout)
	}
	return ""
}

func canonicalLevel(category string) string {
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + strings.ToLower(category[1:])
}
