package controllers

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

// SubmissionController accepts solution attempts, runs the simulated judge
// and feeds verdicts into activity and proficiency tracking.
type SubmissionController struct {
	db          *gorm.DB
	activity    *services.ActivityStore
	proficiency *services.ProficiencyService
}

// NewSubmissionController creates a new controller instance.
func NewSubmissionController(db *gorm.DB, activity *services.ActivityStore, proficiency *services.ProficiencyService) *SubmissionController {
	return &SubmissionController{db: db, activity: activity, proficiency: proficiency}
}

// Submit judges one attempt. The verdict is simulated: a configurable percent
// of submissions pass. Passing attempts count toward the day's activity and
// every attempt updates per-topic proficiency.
func (s *SubmissionController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ProblemSlug string `json:"problem_slug" binding:"required"`
		Language    string `json:"language"`
		Code        string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	var problem models.Problem
	if err := s.db.Where("slug = ?", strings.TrimSpace(req.ProblemSlug)).First(&problem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "problem not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load problem")
		return
	}

	verdict := models.VerdictFailed
	if rand.Intn(100) < config.Get().JudgePassPercent {
		verdict = models.VerdictPassed
	}

	submission := models.Submission{
		Reference: uuid.NewString(),
		UserID:    userID,
		ProblemID: problem.ID,
		Language:  strings.TrimSpace(req.Language),
		Code:      req.Code,
		Verdict:   verdict,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to record submission")
		return
	}

	passed := verdict == models.VerdictPassed
	if err := s.proficiency.RecordOutcome(userID, problem.TopicList(), passed); err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("proficiency update failed for user %d: %v", userID, err)
	}
	if passed {
		day := time.Now().Format(models.DayLayout)
		if err := s.activity.RecordActivity(userID, day, 1); err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("activity update failed for user %d: %v", userID, err)
		}
	}

	utils.Success(ctx, gin.H{
		"reference": submission.Reference,
		"verdict":   verdict,
		"problem":   gin.H{"id": problem.ID, "slug": problem.Slug, "title": problem.Title},
	})
}

// ListMine returns the authenticated user's submissions, newest first.
func (s *SubmissionController) ListMine(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	query := s.db.Model(&models.Submission{}).Where("user_id = ?", userID)
	if verdict := strings.TrimSpace(ctx.Query("verdict")); verdict != "" {
		query = query.Where("verdict = ?", verdict)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to count submissions")
		return
	}

	var submissions []models.Submission
	if err := query.Preload("Problem").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&submissions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to list submissions")
		return
	}

	utils.Success(ctx, gin.H{
		"items": submissions,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}
