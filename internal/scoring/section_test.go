package scoring

import (
	"fmt"
	"testing"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likertScale() models.ScaleOptions {
	return models.ScaleOptions{
		Min: 1, Max: 5,
		MinLabel: "Strongly Disagree",
		MaxLabel: "Strongly Agree",
		Labels:   []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"},
	}
}

func sectionWithQuestions(id string, count int) models.Section {
	sec := models.Section{ID: id, Title: "Section " + id}
	for i := 0; i < count; i++ {
		sec.Questions = append(sec.Questions, models.Question{
			ID:    fmt.Sprintf("%s-q%d", id, i+1),
			Text:  "question",
			Scale: likertScale(),
		})
	}
	return sec
}

func TestScoreSectionAllMax(t *testing.T) {
	sec := sectionWithQuestions("s1", 4)
	answers := map[string]int{}
	for _, q := range sec.Questions {
		answers[q.ID] = 5
	}

	score, err := ScoreSection(sec, answers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score.Percentage)
	assert.Equal(t, 5.0, score.AverageRating)
	assert.Equal(t, 4, score.QuestionsAnswered)
	assert.Equal(t, 4, score.TotalQuestions)
	assert.Equal(t, 400.0, score.MaxPossibleScore)
}

func TestScoreSectionNoAnswers(t *testing.T) {
	sec := sectionWithQuestions("s1", 3)

	score, err := ScoreSection(sec, map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Percentage)
	assert.Equal(t, 0.0, score.AverageRating)
	assert.Equal(t, 0, score.QuestionsAnswered)
	assert.Equal(t, 3, score.TotalQuestions)
}

func TestScoreSectionEmptySection(t *testing.T) {
	score, err := ScoreSection(models.Section{ID: "s1", Title: "Empty"}, map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Percentage)
	assert.Equal(t, 0.0, score.MaxPossibleScore)
}

func TestScoreSectionPartialCompletionCapsPercentage(t *testing.T) {
	// Two of four questions answered at max: unanswered questions still consume
	// denominator, so the section cannot exceed 50%.
	sec := sectionWithQuestions("s1", 4)
	answers := map[string]int{
		sec.Questions[0].ID: 5,
		sec.Questions[1].ID: 5,
	}

	score, err := ScoreSection(sec, answers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, score.Percentage)
	assert.Equal(t, 5.0, score.AverageRating)
	assert.Equal(t, 2, score.QuestionsAnswered)
}

func TestScoreSectionMixedAnswers(t *testing.T) {
	// Scale 1-5, answers [5, 1]: ((100 + 0) / 200) * 100 = 50%, rating (5+1)/2 = 3.
	sec := sectionWithQuestions("s1", 2)
	answers := map[string]int{
		sec.Questions[0].ID: 5,
		sec.Questions[1].ID: 1,
	}

	score, err := ScoreSection(sec, answers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, score.Percentage)
	assert.Equal(t, 3.0, score.AverageRating)
}

func TestScoreSectionDegenerateScale(t *testing.T) {
	sec := models.Section{
		ID:    "s1",
		Title: "Broken",
		Questions: []models.Question{
			{ID: "q1", Scale: models.ScaleOptions{Min: 3, Max: 3}},
		},
	}

	_, err := ScoreSection(sec, map[string]int{"q1": 3})
	assert.ErrorIs(t, err, ErrDegenerateScale)
}
