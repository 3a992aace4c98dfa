package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

// ProgressController exposes the authenticated user's streak, activity
// history and per-topic proficiency.
type ProgressController struct {
	activity    *services.ActivityStore
	proficiency *services.ProficiencyService
}

// NewProgressController creates a new controller instance.
func NewProgressController(activity *services.ActivityStore, proficiency *services.ProficiencyService) *ProgressController {
	return &ProgressController{activity: activity, proficiency: proficiency}
}

// GetStreak returns the user's current and longest streaks.
func (p *ProgressController) GetStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	policy := services.StreakPolicy{RequireToday: config.Get().StreakRequireToday}
	snapshot, err := p.activity.GetStreak(userID, time.Now(), policy)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to compute streak")
		return
	}

	utils.Success(ctx, snapshot)
}

// RecordActivity lets a client log practice done outside the judge, such as a
// mock interview session. Delta defaults to 1 and day to today.
func (p *ProgressController) RecordActivity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Day   string `json:"day"`
		Delta int    `json:"delta"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid request payload")
		return
	}
	if req.Day == "" {
		req.Day = time.Now().Format(models.DayLayout)
	}
	if req.Delta == 0 {
		req.Delta = 1
	}

	if err := p.activity.RecordActivity(userID, req.Day, req.Delta); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDay), errors.Is(err, services.ErrInvalidDelta):
			utils.Error(ctx, http.StatusBadRequest, 40081, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to record activity")
		}
		return
	}

	utils.Success(ctx, gin.H{"day": req.Day, "delta": req.Delta})
}

// GetActivity returns per-day activity counts for a date range, suitable for
// a contribution heatmap. The range defaults to the trailing year.
func (p *ProgressController) GetActivity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	from := strings.TrimSpace(ctx.Query("from"))
	to := strings.TrimSpace(ctx.Query("to"))
	if from == "" {
		from = now.AddDate(-1, 0, 1).Format(models.DayLayout)
	}
	if to == "" {
		to = now.Format(models.DayLayout)
	}

	records, err := p.activity.GetActivity(userID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDay), errors.Is(err, services.ErrInvalidRange):
			utils.Error(ctx, http.StatusBadRequest, 40082, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load activity")
		}
		return
	}

	days := make([]gin.H, 0, len(records))
	for _, r := range records {
		days = append(days, gin.H{"day": r.Day, "count": r.Count})
	}
	utils.Success(ctx, gin.H{"from": from, "to": to, "days": days})
}

// GetTopics returns per-topic proficiency split into strong and
// needs-review groups.
func (p *ProgressController) GetTopics(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	threshold := config.Get().ProficiencyReviewThreshold
	scores, err := p.proficiency.List(userID, threshold)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to load topic proficiency")
		return
	}

	strong := make([]services.TopicScore, 0, len(scores))
	needsReview := make([]services.TopicScore, 0)
	for _, sc := range scores {
		if sc.NeedsReview {
			needsReview = append(needsReview, sc)
		} else {
			strong = append(strong, sc)
		}
	}

	utils.Success(ctx, gin.H{
		"topics":           scores,
		"strong":           strong,
		"needs_review":     needsReview,
		"review_threshold": threshold,
	})
}
