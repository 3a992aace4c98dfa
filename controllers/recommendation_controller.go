package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

// RecommendationController serves personalized problem suggestions.
type RecommendationController struct {
	recommender *services.RecommendationService
}

// NewRecommendationController creates a new controller instance.
func NewRecommendationController(recommender *services.RecommendationService) *RecommendationController {
	return &RecommendationController{recommender: recommender}
}

// GetRecommendations returns unsolved problems matched to the user's profile,
// along with which relaxation tier produced them and the profile inputs used.
func (r *RecommendationController) GetRecommendations(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cfg := config.Get()
	opts := services.RecommendationOptions{
		Limit:      cfg.RecommendLimit,
		MinResults: cfg.RecommendMinResults,
	}
	result, basedOn, err := r.recommender.GetForUser(userID, cfg.ProficiencyReviewThreshold, cfg.WeakTopicCount, opts)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to compute recommendations")
		return
	}

	utils.Success(ctx, gin.H{
		"problems": result.Problems,
		"tier":     result.TierUsed,
		"based_on": basedOn,
	})
}
