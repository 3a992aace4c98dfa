package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProficiencyScore(t *testing.T) {
	tests := []struct {
		solved, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{5, 5, 100},
		{7, 5, 100}, // malformed counters clamp instead of exceeding 100
		{-1, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProficiencyScore(tt.solved, tt.total), "solved=%d total=%d", tt.solved, tt.total)
	}
}

func TestRecordOutcomeAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewProficiencyService(db)

	require.NoError(t, svc.RecordOutcome(1, []string{"Arrays", "Hashing"}, true))
	require.NoError(t, svc.RecordOutcome(1, []string{"Arrays"}, false))
	require.NoError(t, svc.RecordOutcome(1, []string{"Arrays"}, true))

	scores, err := svc.List(1, 60)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	byTopic := map[string]TopicScore{}
	for _, s := range scores {
		byTopic[s.Topic] = s
	}

	arrays := byTopic["Arrays"]
	assert.Equal(t, 2, arrays.Solved)
	assert.Equal(t, 3, arrays.Total)
	assert.Equal(t, 67, arrays.Score)
	assert.False(t, arrays.NeedsReview)

	hashing := byTopic["Hashing"]
	assert.Equal(t, 1, hashing.Solved)
	assert.Equal(t, 1, hashing.Total)
	assert.Equal(t, 100, hashing.Score)
}

func TestRecordOutcomeSkipsEmptyTopics(t *testing.T) {
	db := newTestDB(t)
	svc := NewProficiencyService(db)

	require.NoError(t, svc.RecordOutcome(1, []string{"", "Graphs"}, true))

	scores, err := svc.List(1, 60)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Graphs", scores[0].Topic)
}

func TestListOrdersStrongestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewProficiencyService(db)

	// Graphs 1/4=25, Trees 1/2=50, DP 3/3=100
	require.NoError(t, svc.RecordOutcome(1, []string{"Graphs"}, true))
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordOutcome(1, []string{"Graphs"}, false))
	}
	require.NoError(t, svc.RecordOutcome(1, []string{"Trees"}, true))
	require.NoError(t, svc.RecordOutcome(1, []string{"Trees"}, false))
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordOutcome(1, []string{"DP"}, true))
	}

	scores, err := svc.List(1, 60)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []string{"DP", "Trees", "Graphs"}, []string{scores[0].Topic, scores[1].Topic, scores[2].Topic})
	assert.True(t, scores[2].NeedsReview)
	assert.True(t, scores[1].NeedsReview)
	assert.False(t, scores[0].NeedsReview)
}

func TestWeakTopics(t *testing.T) {
	db := newTestDB(t)
	svc := NewProficiencyService(db)

	require.NoError(t, svc.RecordOutcome(1, []string{"Graphs"}, false))
	require.NoError(t, svc.RecordOutcome(1, []string{"Trees"}, true))
	require.NoError(t, svc.RecordOutcome(1, []string{"Trees"}, false))
	require.NoError(t, svc.RecordOutcome(1, []string{"DP"}, true))

	weak, err := svc.WeakTopics(1, 60, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Graphs", "Trees"}, weak)

	weak, err = svc.WeakTopics(1, 60, 10)
	require.NoError(t, err)
	assert.Len(t, weak, 3)

	weak, err = svc.WeakTopics(42, 60, 3)
	require.NoError(t, err)
	assert.Empty(t, weak)
}
