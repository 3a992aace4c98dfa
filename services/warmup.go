package services

import (
	"time"

	"github.com/cppla/codeprep/utils"
)

// LeaderboardCacheKey builds the redis key for one period/category board.
func LeaderboardCacheKey(period, category string) string {
	return leaderboardCachePrefix + period + ":" + category
}

// StartLeaderboardWarmer launches a background goroutine that periodically
// recomputes the default all/all board so the common request hits a warm
// cache. Best-effort; failures are logged and retried next tick.
func StartLeaderboardWarmer(s *LeaderboardService, interval, ttl time.Duration, opts LeaderboardOptions) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			entries, err := s.GetLeaderboard(time.Now(), PeriodAll, CategoryAll, opts)
			if err != nil {
				if utils.Sugar != nil {
					utils.Sugar.Warnf("leaderboard warm failed: %v", err)
				}
			} else {
				utils.CacheSetJSON(LeaderboardCacheKey(PeriodAll, CategoryAll), entries, ttl)
			}
			time.Sleep(interval)
		}
	}()
}
