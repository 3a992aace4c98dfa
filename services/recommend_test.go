package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/codeprep/models"
)

func problem(id uint, title, difficulty string, topics, companies []string, frequency int) models.Problem {
	return models.Problem{
		ID:         id,
		Title:      title,
		Slug:       title,
		Difficulty: difficulty,
		Topics:     models.EncodeStringList(topics),
		Companies:  models.EncodeStringList(companies),
		Frequency:  frequency,
	}
}

func TestRecommendStrictTier(t *testing.T) {
	catalog := []models.Problem{
		problem(1, "two-sum", models.DifficultyEasy, []string{"Arrays"}, []string{"Acme"}, 90),
		problem(2, "word-break", models.DifficultyMedium, []string{"DP"}, []string{"Acme"}, 80),
		problem(3, "lru-cache", models.DifficultyMedium, []string{"Design"}, []string{"Other"}, 70),
		problem(4, "merge-sort", models.DifficultyEasy, []string{"Sorting"}, []string{"Acme"}, 60),
		problem(5, "min-stack", models.DifficultyEasy, []string{"Stacks"}, []string{"Acme"}, 50),
		problem(6, "valid-bst", models.DifficultyMedium, []string{"Trees"}, []string{"Acme"}, 40),
		problem(7, "regex-match", models.DifficultyHard, []string{"DP"}, []string{"Acme"}, 30),
	}
	input := RecommendationInput{
		TargetCompanies: []string{"Acme"},
		PracticeTopics:  []string{"Arrays", "DP", "Sorting", "Stacks", "Trees"},
		ExperienceLevel: models.LevelBeginner,
		Solved:          map[uint]bool{},
	}

	result := Recommend(catalog, input, RecommendationOptions{Limit: 15, MinResults: 5})

	assert.Equal(t, TierStrict, result.TierUsed)
	require.Len(t, result.Problems, 5) // hard and off-company entries filtered out
	assert.Equal(t, uint(1), result.Problems[0].Problem.ID)
	for _, rp := range result.Problems {
		assert.NotEqual(t, models.DifficultyHard, rp.Problem.Difficulty)
		assert.NotEqual(t, uint(3), rp.Problem.ID)
	}
}

func TestRecommendNeverReturnsSolved(t *testing.T) {
	catalog := make([]models.Problem, 0, 10)
	for i := uint(1); i <= 10; i++ {
		catalog = append(catalog, problem(i, fmt.Sprintf("p%d", i), models.DifficultyMedium, []string{"DP"}, nil, int(i)))
	}
	input := RecommendationInput{
		ExperienceLevel: models.LevelAdvanced,
		Solved:          map[uint]bool{2: true, 4: true, 6: true},
	}

	result := Recommend(catalog, input, RecommendationOptions{Limit: 15, MinResults: 5})
	for _, rp := range result.Problems {
		assert.False(t, input.Solved[rp.Problem.ID], "problem %d was already solved", rp.Problem.ID)
	}
	assert.Len(t, result.Problems, 7)
}

func TestRecommendRelaxesWhenStrictTooSparse(t *testing.T) {
	// Only one problem matches company+topic+difficulty; relaxing drops the
	// company constraint and finds enough.
	catalog := []models.Problem{
		problem(1, "a", models.DifficultyMedium, []string{"DP"}, []string{"Acme"}, 90),
		problem(2, "b", models.DifficultyMedium, []string{"DP"}, []string{"Other"}, 80),
		problem(3, "c", models.DifficultyMedium, []string{"DP"}, []string{"Other"}, 70),
		problem(4, "d", models.DifficultyHard, []string{"DP"}, []string{"Other"}, 60),
		problem(5, "e", models.DifficultyMedium, []string{"DP"}, nil, 50),
		problem(6, "f", models.DifficultyMedium, []string{"DP"}, nil, 40),
	}
	input := RecommendationInput{
		TargetCompanies: []string{"Acme"},
		PracticeTopics:  []string{"DP"},
		ExperienceLevel: models.LevelIntermediate,
		Solved:          map[uint]bool{},
	}

	result := Recommend(catalog, input, RecommendationOptions{Limit: 15, MinResults: 5})
	assert.Equal(t, TierRelaxed, result.TierUsed)
	assert.Len(t, result.Problems, 6)
}

func TestRecommendFallbackTier(t *testing.T) {
	catalog := []models.Problem{
		problem(1, "a", models.DifficultyHard, []string{"Graphs"}, []string{"Zeta"}, 10),
		problem(2, "b", models.DifficultyHard, []string{"Graphs"}, []string{"Zeta"}, 20),
	}
	input := RecommendationInput{
		TargetCompanies: []string{"Acme"},
		PracticeTopics:  []string{"DP"},
		ExperienceLevel: models.LevelBeginner,
		Solved:          map[uint]bool{},
	}

	result := Recommend(catalog, input, RecommendationOptions{Limit: 15, MinResults: 5})
	assert.Equal(t, TierFallback, result.TierUsed)
	require.Len(t, result.Problems, 2)
	assert.Equal(t, uint(2), result.Problems[0].Problem.ID, "fallback still orders by frequency")
}

func TestRecommendOrdersByFrequencyAndLimits(t *testing.T) {
	catalog := make([]models.Problem, 0, 20)
	for i := uint(1); i <= 20; i++ {
		catalog = append(catalog, problem(i, fmt.Sprintf("p%d", i), models.DifficultyMedium, []string{"DP"}, nil, int(i)))
	}
	input := RecommendationInput{
		PracticeTopics:  []string{"DP"},
		ExperienceLevel: models.LevelAdvanced,
		Solved:          map[uint]bool{},
	}

	result := Recommend(catalog, input, RecommendationOptions{Limit: 5, MinResults: 5})
	require.Len(t, result.Problems, 5)
	for i, rp := range result.Problems {
		assert.Equal(t, uint(20-i), rp.Problem.ID)
	}
}

func TestRecommendReasons(t *testing.T) {
	input := RecommendationInput{
		TargetCompanies: []string{"Acme"},
		PracticeTopics:  []string{"DP"},
		ExperienceLevel: models.LevelBeginner,
		Solved:          map[uint]bool{},
		WeakTopics:      []string{"Graphs"},
	}

	both := problem(1, "a", models.DifficultyMedium, []string{"DP"}, []string{"Acme"}, 1)
	assert.Equal(t, "Covers DP and is frequently asked at Acme", recommendReason(&both, input))

	topicOnly := problem(2, "b", models.DifficultyMedium, []string{"DP"}, []string{"Other"}, 1)
	assert.Equal(t, "Matches your practice topic DP", recommendReason(&topicOnly, input))

	companyOnly := problem(3, "c", models.DifficultyMedium, []string{"Trees"}, []string{"Acme"}, 1)
	assert.Equal(t, "Frequently asked at Acme", recommendReason(&companyOnly, input))

	weak := problem(4, "d", models.DifficultyMedium, []string{"Graphs"}, nil, 1)
	assert.Equal(t, "Strengthens Graphs, one of your weaker topics", recommendReason(&weak, input))

	generic := problem(5, "e", models.DifficultyEasy, []string{"Bits"}, nil, 1)
	assert.Equal(t, "Popular Easy problem suited to Beginner level", recommendReason(&generic, input))
}

func TestRecommendServiceUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommendationService(db, NewProficiencyService(db))

	result, basedOn, err := svc.GetForUser(999, 60, 3, RecommendationOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Problems)
	assert.Empty(t, basedOn.PracticeTopics)
}

func TestRecommendServiceExcludesSolved(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecommendationService(db, NewProficiencyService(db))

	user := models.User{
		Username:        "eve",
		ExperienceLevel: models.LevelIntermediate,
		PracticeTopics:  models.EncodeStringList([]string{"DP"}),
	}
	require.NoError(t, db.Create(&user).Error)

	solved := problem(0, "solved-one", models.DifficultyMedium, []string{"DP"}, nil, 99)
	unsolved := problem(0, "fresh-one", models.DifficultyMedium, []string{"DP"}, nil, 50)
	require.NoError(t, db.Create(&solved).Error)
	require.NoError(t, db.Create(&unsolved).Error)

	require.NoError(t, db.Create(&models.Submission{
		Reference: "ref-1",
		UserID:    user.ID,
		ProblemID: solved.ID,
		Verdict:   models.VerdictPassed,
	}).Error)

	result, basedOn, err := svc.GetForUser(user.ID, 60, 3, RecommendationOptions{Limit: 15, MinResults: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"DP"}, basedOn.PracticeTopics)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, unsolved.ID, result.Problems[0].Problem.ID)
}
