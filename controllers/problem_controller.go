package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/middleware"
	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/utils"
)

const cacheListTTL = 5 * time.Minute

// ProblemController manages the practice problem catalog.
type ProblemController struct {
	db *gorm.DB
}

// NewProblemController creates a new ProblemController instance.
func NewProblemController(db *gorm.DB) *ProblemController {
	return &ProblemController{db: db}
}

// ListProblems returns paginated problems with optional difficulty, topic,
// company and search filters.
func (p *ProblemController) ListProblems(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))
	difficulty := strings.TrimSpace(ctx.Query("difficulty"))
	topic := strings.TrimSpace(ctx.Query("topic"))
	company := strings.TrimSpace(ctx.Query("company"))

	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		utils.Error(ctx, http.StatusBadRequest, 40060, "difficulty must be Easy, Medium or Hard")
		return
	}

	// Cache unfiltered catalog pages only to avoid cache key explosion
	filtered := search != "" || difficulty != "" || topic != "" || company != ""
	cacheKey := fmt.Sprintf("cache:problems:list:page=%d:size=%d", page, pageSize)
	if !filtered {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	query := p.db.Model(&models.Problem{}).Order("frequency DESC, id ASC")
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	// Topics/companies are JSON arrays in text columns; substring match keeps
	// the query portable across mysql and sqlite.
	if topic != "" {
		query = query.Where("topics LIKE ?", "%\""+topic+"\"%")
	}
	if company != "" {
		query = query.Where("companies LIKE ?", "%\""+company+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to count problems")
		return
	}

	var problems []models.Problem
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&problems).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to list problems")
		return
	}

	payload := gin.H{
		"items": problems,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	if !filtered {
		wrapper := gin.H{"code": 0, "message": "success", "data": payload}
		utils.CacheSetJSON(cacheKey, wrapper, cacheListTTL)
	}
	utils.Success(ctx, payload)
}

// GetProblem returns one problem by slug.
func (p *ProblemController) GetProblem(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40061, "missing problem slug")
		return
	}

	var problem models.Problem
	if err := p.db.Where("slug = ?", slug).First(&problem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "problem not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to get problem")
		return
	}

	utils.Success(ctx, gin.H{"problem": problem})
}

type problemRequest struct {
	Title      string   `json:"title" binding:"required,min=1"`
	Slug       string   `json:"slug"`
	Statement  string   `json:"statement" binding:"required"`
	Difficulty string   `json:"difficulty" binding:"required"`
	Topics     []string `json:"topics"`
	Companies  []string `json:"companies"`
	Frequency  int      `json:"frequency"`
	Acceptance float64  `json:"acceptance"`
}

// CreateProblem adds a catalog entry. Admin only.
func (p *ProblemController) CreateProblem(ctx *gin.Context) {
	var req problemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid request payload")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40063, "title cannot be empty")
		return
	}
	if !models.ValidDifficulty(req.Difficulty) {
		utils.Error(ctx, http.StatusBadRequest, 40060, "difficulty must be Easy, Medium or Hard")
		return
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = slugify(title)
	}

	problem := models.Problem{
		Title:      title,
		Slug:       slug,
		Statement:  utils.Sanitize(req.Statement),
		Difficulty: req.Difficulty,
		Topics:     models.EncodeStringList(trimEach(req.Topics)),
		Companies:  models.EncodeStringList(trimEach(req.Companies)),
		Frequency:  req.Frequency,
		Acceptance: req.Acceptance,
	}

	if err := p.db.Create(&problem).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to create problem")
		return
	}

	utils.InvalidateByPrefix("cache:problems:list:")
	utils.Success(ctx, gin.H{"problem": problem})
}

// UpdateProblem edits a catalog entry by ID. Admin only.
func (p *ProblemController) UpdateProblem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40064, "invalid problem id")
		return
	}

	var problem models.Problem
	if err := p.db.First(&problem, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "problem not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to get problem")
		return
	}

	var req problemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid request payload")
		return
	}
	if !models.ValidDifficulty(req.Difficulty) {
		utils.Error(ctx, http.StatusBadRequest, 40060, "difficulty must be Easy, Medium or Hard")
		return
	}

	problem.Title = utils.Sanitize(strings.TrimSpace(req.Title))
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		problem.Slug = slug
	}
	problem.Statement = utils.Sanitize(req.Statement)
	problem.Difficulty = req.Difficulty
	problem.Topics = models.EncodeStringList(trimEach(req.Topics))
	problem.Companies = models.EncodeStringList(trimEach(req.Companies))
	problem.Frequency = req.Frequency
	problem.Acceptance = req.Acceptance

	if err := p.db.Save(&problem).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to update problem")
		return
	}

	utils.InvalidateByPrefix("cache:problems:list:")
	utils.Success(ctx, gin.H{"problem": problem})
}

// DeleteProblem removes a catalog entry by ID. Admin only.
func (p *ProblemController) DeleteProblem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40064, "invalid problem id")
		return
	}

	res := p.db.Delete(&models.Problem{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to delete problem")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40460, "problem not found")
		return
	}

	utils.InvalidateByPrefix("cache:problems:list:")
	utils.Success(ctx, gin.H{"deleted": id})
}

func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
