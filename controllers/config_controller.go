package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/utils"
)

// ConfigController serves dynamic, environment-driven UI configuration.
type ConfigController struct{}

func NewConfigController() *ConfigController { return &ConfigController{} }

// GetPolicies exposes the scoring and ranking policy knobs so clients can
// explain streaks, proficiency and leaderboard math to users.
func (c *ConfigController) GetPolicies(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"streak": gin.H{
			"require_today": cfg.StreakRequireToday,
		},
		"proficiency": gin.H{
			"review_threshold": cfg.ProficiencyReviewThreshold,
			"weak_topic_count": cfg.WeakTopicCount,
		},
		"leaderboard": gin.H{
			"streak_weight":        cfg.LeaderboardStreakWeight,
			"top_performer_cutoff": 90.0,
		},
		"recommendations": gin.H{
			"limit":       cfg.RecommendLimit,
			"min_results": cfg.RecommendMinResults,
		},
	})
}

// GetNotice returns announcement/notice content configured via config.
func (c *ConfigController) GetNotice(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"title": cfg.NoticeTitle,
		"html":  cfg.NoticeHTML,
	})
}
