package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/utils"
)

// HintController proxies hint requests to an OpenAI-compatible chat API.
// When the upstream is unconfigured or fails, a canned hint is returned so
// the endpoint never blocks practice.
type HintController struct {
	db     *gorm.DB
	client *http.Client
}

// NewHintController creates a new controller instance.
func NewHintController(db *gorm.DB) *HintController {
	return &HintController{
		db:     db,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// GetHint returns a nudge for one problem without revealing the solution.
func (h *HintController) GetHint(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40061, "missing problem slug")
		return
	}

	var problem models.Problem
	if err := h.db.Where("slug = ?", slug).First(&problem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "problem not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to get problem")
		return
	}

	hint, source := h.fetchHint(ctx.Request.Context(), &problem)
	utils.Success(ctx, gin.H{
		"problem": gin.H{"slug": problem.Slug, "title": problem.Title},
		"hint":    hint,
		"source":  source,
	})
}

func (h *HintController) fetchHint(ctx context.Context, problem *models.Problem) (string, string) {
	cfg := config.Get()
	if cfg.HintAPIURL == "" || cfg.HintAPIKey == "" {
		return staticHint(problem), "static"
	}

	prompt := fmt.Sprintf(
		"Give a short hint for the coding problem %q (difficulty %s, topics %s). Nudge toward the approach; do not reveal the full solution.",
		problem.Title, problem.Difficulty, strings.Join(problem.TopicList(), ", "))

	body, _ := json.Marshal(gin.H{
		"model": cfg.HintModel,
		"messages": []gin.H{
			{"role": "system", "content": "You are a coding interview coach. Answer in at most three sentences."},
			{"role": "user", "content": prompt},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.HintAPIURL, bytes.NewReader(body))
	if err != nil {
		return staticHint(problem), "static"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.HintAPIKey)

	resp, err := h.client.Do(req)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("hint upstream call failed: %v", err)
		}
		return staticHint(problem), "static"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("hint upstream returned %s", resp.Status)
		}
		return staticHint(problem), "static"
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Choices) == 0 {
		return staticHint(problem), "static"
	}
	hint := strings.TrimSpace(payload.Choices[0].Message.Content)
	if hint == "" {
		return staticHint(problem), "static"
	}
	return hint, "llm"
}

func staticHint(problem *models.Problem) string {
	topics := problem.TopicList()
	if len(topics) > 0 {
		return fmt.Sprintf("Think about which %s technique applies here, and start from the brute-force solution before optimizing.", topics[0])
	}
	return "Start from the brute-force solution, then look for repeated work you can cache or skip."
}
