package scoring

import (
	"github.com/edupulse/assessment-portal/internal/models"
)

// AttemptScore is the full scoring result for one attempt.
type AttemptScore struct {
	SectionScores        []models.SectionScore `json:"section_scores"`
	OverallPercentage    float64               `json:"overall_percentage"`
	OverallAverageRating float64               `json:"overall_average_rating"`
	QuestionsAnswered    int                   `json:"questions_answered"`
	TotalQuestions       int                   `json:"total_questions"`
}

// ScoreAttempt scores a whole attempt against the section shape it was taken on.
//
// The overall percentage is per-question weighted: raw numerators and denominators
// are accumulated across sections, so a two-question section carries less weight
// than a five-question one. The overall average rating is deliberately different:
// it is the flat mean of every raw answer in the attempt, not an average of the
// per-section averages.
func ScoreAttempt(sections []models.Section, answers map[string]int) (AttemptScore, error) {
	var (
		result        AttemptScore
		totalScore    float64
		totalMaxScore float64
		ratingSum     int
	)

	result.SectionScores = make([]models.SectionScore, 0, len(sections))
	for _, sec := range sections {
		score, rawScore, rawMax, err := scoreSectionSums(sec, answers)
		if err != nil {
			return AttemptScore{}, err
		}
		result.SectionScores = append(result.SectionScores, score)
		totalScore += rawScore
		totalMaxScore += rawMax
		result.QuestionsAnswered += score.QuestionsAnswered
		result.TotalQuestions += score.TotalQuestions

		for _, q := range sec.Questions {
			if value, ok := answers[q.ID]; ok {
				ratingSum += value
			}
		}
	}

	if totalMaxScore > 0 {
		result.OverallPercentage = round1(totalScore / totalMaxScore * 100)
	}
	if result.QuestionsAnswered > 0 {
		result.OverallAverageRating = round1(float64(ratingSum) / float64(result.QuestionsAnswered))
	}
	return result, nil
}
