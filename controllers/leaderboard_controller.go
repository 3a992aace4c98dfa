package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

// LeaderboardController serves ranked boards with redis read-through caching.
type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

// GetLeaderboard returns the ranked board for ?period= (all/month/week) and
// ?category= (all or an experience level). Boards are cached briefly since
// they tolerate slight staleness.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	period := strings.ToLower(strings.TrimSpace(ctx.DefaultQuery("period", services.PeriodAll)))
	category := strings.TrimSpace(ctx.DefaultQuery("category", services.CategoryAll))

	cfg := config.Get()
	cacheKey := services.LeaderboardCacheKey(period, category)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		var entries []services.LeaderboardEntry
		if err := json.Unmarshal(b, &entries); err == nil {
			utils.Success(ctx, leaderboardPayload(period, category, entries))
			return
		}
	}

	opts := services.LeaderboardOptions{
		StreakWeight: cfg.LeaderboardStreakWeight,
		Streak:       services.StreakPolicy{RequireToday: cfg.StreakRequireToday},
	}
	entries, err := l.leaderboard.GetLeaderboard(time.Now(), period, category, opts)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod), errors.Is(err, services.ErrInvalidCategory):
			utils.Error(ctx, http.StatusBadRequest, 40090, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to compute leaderboard")
		}
		return
	}

	ttl := time.Duration(cfg.LeaderboardCacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	utils.CacheSetJSON(cacheKey, entries, ttl)

	utils.Success(ctx, leaderboardPayload(period, category, entries))
}

func leaderboardPayload(period, category string, entries []services.LeaderboardEntry) gin.H {
	if entries == nil {
		entries = []services.LeaderboardEntry{}
	}
	return gin.H{
		"period":   period,
		"category": category,
		"total":    len(entries),
		"entries":  entries,
	}
}
