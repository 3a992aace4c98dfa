package services

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/codeprep/models"
)

// TopicScore is the read-side view of one proficiency row.
type TopicScore struct {
	Topic       string `json:"topic"`
	Solved      int    `json:"solved"`
	Total       int    `json:"total"`
	Score       int    `json:"proficiency_score"`
	NeedsReview bool   `json:"needs_review"`
}

// ProficiencyService maintains per (user, topic) solved/attempted counters.
type ProficiencyService struct {
	db *gorm.DB
}

// NewProficiencyService creates a ProficiencyService backed by db.
func NewProficiencyService(db *gorm.DB) *ProficiencyService {
	return &ProficiencyService{db: db}
}

// RecordOutcome bumps the counters for every topic tag of a judged submission.
// Each bump is one atomic upsert; counters never silently decrease.
func (s *ProficiencyService) RecordOutcome(userID uint, topics []string, passed bool) error {
	solvedInc := 0
	if passed {
		solvedInc = 1
	}
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "topic"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total":      gorm.Expr("total + 1"),
				"solved":     gorm.Expr("solved + ?", solvedInc),
				"updated_at": time.Now(),
			}),
		}).Create(&models.TopicProficiency{UserID: userID, Topic: topic, Solved: solvedInc, Total: 1}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns all topic scores for a user, strongest first. An unknown user
// yields an empty list.
func (s *ProficiencyService) List(userID uint, reviewThreshold int) ([]TopicScore, error) {
	var rows []models.TopicProficiency
	if err := s.db.Where("user_id = ?", userID).Order("topic ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	scores := make([]TopicScore, 0, len(rows))
	for _, row := range rows {
		score := ProficiencyScore(row.Solved, row.Total)
		scores = append(scores, TopicScore{
			Topic:       row.Topic,
			Solved:      row.Solved,
			Total:       row.Total,
			Score:       score,
			NeedsReview: score < reviewThreshold,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}

// WeakTopics returns the bottom count topic names by score, weakest first.
func (s *ProficiencyService) WeakTopics(userID uint, reviewThreshold, count int) ([]string, error) {
	scores, err := s.List(userID, reviewThreshold)
	if err != nil {
		return nil, err
	}
	if count <= 0 || len(scores) == 0 {
		return nil, nil
	}

	// scores is sorted strongest first; take from the tail.
	weak := make([]string, 0, count)
	for i := len(scores) - 1; i >= 0 && len(weak) < count; i-- {
		weak = append(weak, scores[i].Topic)
	}
	return weak, nil
}

// ProficiencyScore derives the 0-100 score. A zero total yields 0, never a
// divide-by-zero, and the result is clamped against malformed counters.
func ProficiencyScore(solved, total int) int {
	if total < 1 {
		total = 1
	}
	score := int(math.Round(100 * float64(solved) / float64(total)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
