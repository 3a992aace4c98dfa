package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/cppla/codeprep/models"
)

// Relaxation tiers, reported back so the UI can explain sparse results.
const (
	TierStrict   = "strict"
	TierRelaxed  = "relaxed"
	TierFallback = "fallback"
)

// RecommendationInput is everything the filter needs about one user.
type RecommendationInput struct {
	TargetCompanies []string
	PracticeTopics  []string
	ExperienceLevel string
	Solved          map[uint]bool
	WeakTopics      []string
}

// RecommendedProblem pairs a catalog entry with a human-readable reason.
type RecommendedProblem struct {
	Problem models.Problem `json:"problem"`
	Reason  string         `json:"reason"`
}

// RecommendationResult is the ranked output of the tiered filter.
type RecommendationResult struct {
	Problems []RecommendedProblem `json:"problems"`
	TierUsed string               `json:"tier_used"`
}

// RecommendationOptions carries the tunable limits.
type RecommendationOptions struct {
	Limit      int // max problems returned
	MinResults int // a tier yielding fewer than this triggers the next tier
}

type problemPredicate func(p *models.Problem) bool

type relaxationTier struct {
	name       string
	predicates []problemPredicate
}

// Recommend selects up to Limit unsolved problems for the user, trying
// progressively relaxed filter tiers until one yields at least MinResults.
// Tiers are an ordered pipeline so new stages slot in without restructuring.
// Solved problems are excluded at every tier.
func Recommend(catalog []models.Problem, input RecommendationInput, opts RecommendationOptions) RecommendationResult {
	if opts.Limit <= 0 {
		opts.Limit = 15
	}
	if opts.MinResults <= 0 {
		opts.MinResults = 5
	}

	difficulties := difficultiesForLevel(input.ExperienceLevel)

	notSolved := func(p *models.Problem) bool { return !input.Solved[p.ID] }
	companyMatch := func(p *models.Problem) bool {
		return len(input.TargetCompanies) == 0 || anyOverlap(p.CompanyList(), input.TargetCompanies)
	}
	topicMatch := func(p *models.Problem) bool {
		return len(input.PracticeTopics) == 0 || anyOverlap(p.TopicList(), input.PracticeTopics)
	}
	difficultyMatch := func(p *models.Problem) bool { return difficulties[p.Difficulty] }

	tiers := []relaxationTier{
		{name: TierStrict, predicates: []problemPredicate{notSolved, companyMatch, topicMatch, difficultyMatch}},
		{name: TierRelaxed, predicates: []problemPredicate{notSolved, topicMatch, difficultyMatch}},
		{name: TierFallback, predicates: []problemPredicate{notSolved}},
	}

	sorted := make([]models.Problem, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frequency > sorted[j].Frequency })

	var picked []models.Problem
	tierUsed := TierFallback
	for _, tier := range tiers {
		picked = picked[:0]
		for i := range sorted {
			if matchesAll(&sorted[i], tier.predicates) {
				picked = append(picked, sorted[i])
			}
		}
		if len(picked) >= opts.MinResults {
			tierUsed = tier.name
			break
		}
	}
	if len(picked) > opts.Limit {
		picked = picked[:opts.Limit]
	}

	out := make([]RecommendedProblem, 0, len(picked))
	for i := range picked {
		out = append(out, RecommendedProblem{
			Problem: picked[i],
			Reason:  recommendReason(&picked[i], input),
		})
	}
	return RecommendationResult{Problems: out, TierUsed: tierUsed}
}

func matchesAll(p *models.Problem, predicates []problemPredicate) bool {
	for _, pred := range predicates {
		if !pred(p) {
			return false
		}
	}
	return true
}

// recommendReason picks the most specific applicable justification:
// topic+company, topic, company, weak topic, then a generic level statement.
func recommendReason(p *models.Problem, input RecommendationInput) string {
	topics := p.TopicList()
	companies := p.CompanyList()
	topic := firstOverlap(topics, input.PracticeTopics)
	company := firstOverlap(companies, input.TargetCompanies)

	switch {
	case topic != "" && company != "":
		return fmt.Sprintf("Covers %s and is frequently asked at %s", topic, company)
	case topic != "":
		return fmt.Sprintf("Matches your practice topic %s", topic)
	case company != "":
		return fmt.Sprintf("Frequently asked at %s", company)
	}
	if weak := firstOverlap(topics, input.WeakTopics); weak != "" {
		return fmt.Sprintf("Strengthens %s, one of your weaker topics", weak)
	}
	level := input.ExperienceLevel
	if !models.ValidExperienceLevel(level) {
		level = models.LevelBeginner
	}
	return fmt.Sprintf("Popular %s problem suited to %s level", p.Difficulty, level)
}

// difficultiesForLevel maps an experience level onto the difficulty set used
// by the strict and relaxed tiers. Unknown levels fall back to Beginner.
func difficultiesForLevel(level string) map[string]bool {
	switch level {
	case models.LevelIntermediate, models.LevelAdvanced:
		return map[string]bool{models.DifficultyMedium: true, models.DifficultyHard: true}
	default:
		return map[string]bool{models.DifficultyEasy: true, models.DifficultyMedium: true}
	}
}

func anyOverlap(a, b []string) bool {
	return firstOverlap(a, b) != ""
}

func firstOverlap(a, b []string) string {
	if len(a) == 0 || len(b) == 0 {
		return ""
	}
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	for _, s := range a {
		if set[s] {
			return s
		}
	}
	return ""
}

// RecommendationService loads a user's profile and history then runs the
// tiered filter over the problem catalog.
type RecommendationService struct {
	db          *gorm.DB
	proficiency *ProficiencyService
}

// NewRecommendationService creates a RecommendationService backed by db.
func NewRecommendationService(db *gorm.DB, proficiency *ProficiencyService) *RecommendationService {
	return &RecommendationService{db: db, proficiency: proficiency}
}

// BasedOn echoes the profile inputs a recommendation was computed from.
type BasedOn struct {
	TargetCompanies []string `json:"target_companies"`
	PracticeTopics  []string `json:"practice_topics"`
	ExperienceLevel string   `json:"experience_level"`
}

// GetForUser builds the recommendation input from storage and runs the filter.
// An unknown user yields an empty result, since absence of history is an
// expected state rather than a fault.
func (s *RecommendationService) GetForUser(userID uint, reviewThreshold, weakCount int, opts RecommendationOptions) (RecommendationResult, BasedOn, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return RecommendationResult{Problems: []RecommendedProblem{}}, BasedOn{}, nil
		}
		return RecommendationResult{}, BasedOn{}, err
	}

	var solvedIDs []uint
	if err := s.db.Model(&models.Submission{}).
		Where("user_id = ? AND verdict = ?", userID, models.VerdictPassed).
		Distinct("problem_id").
		Pluck("problem_id", &solvedIDs).Error; err != nil {
		return RecommendationResult{}, BasedOn{}, err
	}
	solved := make(map[uint]bool, len(solvedIDs))
	for _, id := range solvedIDs {
		solved[id] = true
	}

	weak, err := s.proficiency.WeakTopics(userID, reviewThreshold, weakCount)
	if err != nil {
		return RecommendationResult{}, BasedOn{}, err
	}

	var catalog []models.Problem
	if err := s.db.Order("frequency DESC").Find(&catalog).Error; err != nil {
		return RecommendationResult{}, BasedOn{}, err
	}

	input := RecommendationInput{
		TargetCompanies: user.TargetCompanyList(),
		PracticeTopics:  user.PracticeTopicList(),
		ExperienceLevel: user.ExperienceLevel,
		Solved:          solved,
		WeakTopics:      weak,
	}
	basedOn := BasedOn{
		TargetCompanies: input.TargetCompanies,
		PracticeTopics:  input.PracticeTopics,
		ExperienceLevel: input.ExperienceLevel,
	}
	return Recommend(catalog, input, opts), basedOn, nil
}
