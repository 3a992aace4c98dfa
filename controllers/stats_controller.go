package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/utils"
)

// StatsController provides platform statistics such as counts and daily traffic.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the platform.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var problemCount int64
	var submissionCount int64
	var solvedCount int64
	var dailyTraffic int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.Problem{}).Count(&problemCount).Error; err != nil {
		problemCount = 0
	}

	if err := s.db.Model(&models.Submission{}).Count(&submissionCount).Error; err != nil {
		submissionCount = 0
	}

	if err := s.db.Model(&models.Submission{}).
		Where("verdict = ?", models.VerdictPassed).
		Count(&solvedCount).Error; err != nil {
		solvedCount = 0
	}

	// Daily traffic (PV-based): sum of today's page views across all routes
	// Use string date equality to avoid timezone/type mismatches with DATE column
	today := time.Now().In(time.Local).Format(models.DayLayout)
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyTraffic).Error; err != nil {
		dailyTraffic = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":       userCount,
		"problem_count":    problemCount,
		"submission_count": submissionCount,
		"solved_count":     solvedCount,
		"daily_page_views": dailyTraffic,
	})
}
