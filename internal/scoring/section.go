package scoring

import (
	"github.com/edupulse/assessment-portal/internal/models"
)

// ScoreSection computes the score for one section of one attempt. Every question
// contributes 100 points to the denominator whether or not it was answered, so a
// partially completed section caps its own percentage. The average rating is the
// mean of the raw (un-normalized) answer values over answered questions only.
func ScoreSection(sec models.Section, answers map[string]int) (models.SectionScore, error) {
	score, _, _, err := scoreSectionSums(sec, answers)
	return score, err
}

// scoreSectionSums additionally returns the raw numerator and denominator so the
// attempt scorer can accumulate across sections without re-rounding.
func scoreSectionSums(sec models.Section, answers map[string]int) (models.SectionScore, float64, float64, error) {
	var (
		scoreSum  float64
		maxSum    float64
		ratingSum int
		answered  int
	)

	for _, q := range sec.Questions {
		maxSum += 100
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		normalized, err := NormalizeScale(value, q.Scale.Min, q.Scale.Max)
		if err != nil {
			return models.SectionScore{}, 0, 0, err
		}
		scoreSum += normalized
		ratingSum += value
		answered++
	}

	percentage := 0.0
	if maxSum > 0 {
		percentage = round1(scoreSum / maxSum * 100)
	}
	averageRating := 0.0
	if answered > 0 {
		averageRating = round1(float64(ratingSum) / float64(answered))
	}

	result := models.SectionScore{
		SectionID:         sec.ID,
		SectionTitle:      sec.Title,
		Score:             round1(scoreSum),
		MaxPossibleScore:  maxSum,
		Percentage:        percentage,
		AverageRating:     averageRating,
		QuestionsAnswered: answered,
		TotalQuestions:    len(sec.Questions),
	}
	return result, scoreSum, maxSum, nil
}
