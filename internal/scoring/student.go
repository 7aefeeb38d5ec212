package scoring

import (
	"time"

	"github.com/edupulse/assessment-portal/internal/models"
)

// AttemptSummary is one completed attempt in a student's history.
type AttemptSummary struct {
	AssessmentID         uint       `json:"assessment_id"`
	OverallPercentage    float64    `json:"overall_percentage"`
	OverallAverageRating float64    `json:"overall_average_rating"`
	TimeSpent            int        `json:"time_spent"`
	CompletedAt          *time.Time `json:"completed_at"`
}

// SectionPerformance is a student's average performance on sections sharing a
// title across assessments. Titles rather than ids are the grouping key because
// each assessment mints its own section ids.
type SectionPerformance struct {
	SectionTitle      string  `json:"section_title"`
	AveragePercentage float64 `json:"average_percentage"`
	AverageRating     float64 `json:"average_rating"`
	AttemptCount      int     `json:"attempt_count"`
}

// StudentReport aggregates one student's attempts across assessments.
type StudentReport struct {
	OverallAveragePercentage float64              `json:"overall_average_percentage"`
	OverallAverageRating     float64              `json:"overall_average_rating"`
	CompletedAttempts        int                  `json:"completed_attempts"`
	History                  []AttemptSummary     `json:"history"`
	SectionPerformance       []SectionPerformance `json:"section_performance"`
	AreasNeedingAttention    []string             `json:"areas_needing_attention"`
}

// AggregateStudent builds a cross-assessment report for one student. Only
// completed attempts contribute. Averages run over the already-rounded per-attempt
// values, matching the cohort aggregation semantics.
func AggregateStudent(attempts []*models.AttemptRecord, threshold float64) *StudentReport {
	report := &StudentReport{
		History:               []AttemptSummary{},
		SectionPerformance:    []SectionPerformance{},
		AreasNeedingAttention: []string{},
	}

	type sectionAccum struct {
		percentageSum float64
		ratingSum     float64
		count         int
	}
	accums := make(map[string]*sectionAccum)
	var titleOrder []string

	var percentageSum, ratingSum float64
	for _, attempt := range attempts {
		if attempt.Status != models.AttemptCompleted {
			continue
		}
		report.CompletedAttempts++
		percentageSum += attempt.OverallPercentage
		ratingSum += attempt.OverallAverageRating
		report.History = append(report.History, AttemptSummary{
			AssessmentID:         attempt.AssessmentID,
			OverallPercentage:    attempt.OverallPercentage,
			OverallAverageRating: attempt.OverallAverageRating,
			TimeSpent:            attempt.TimeSpent,
			CompletedAt:          attempt.CompletedAt,
		})

		for _, ss := range attempt.SectionScores.Data() {
			accum, ok := accums[ss.SectionTitle]
			if !ok {
				accum = &sectionAccum{}
				accums[ss.SectionTitle] = accum
				titleOrder = append(titleOrder, ss.SectionTitle)
			}
			accum.percentageSum += ss.Percentage
			accum.ratingSum += ss.AverageRating
			accum.count++
		}
	}

	if report.CompletedAttempts > 0 {
		report.OverallAveragePercentage = round1(percentageSum / float64(report.CompletedAttempts))
		report.OverallAverageRating = round1(ratingSum / float64(report.CompletedAttempts))
	}

	for _, title := range titleOrder {
		accum := accums[title]
		perf := SectionPerformance{
			SectionTitle:      title,
			AveragePercentage: round1(accum.percentageSum / float64(accum.count)),
			AverageRating:     round1(accum.ratingSum / float64(accum.count)),
			AttemptCount:      accum.count,
		}
		report.SectionPerformance = append(report.SectionPerformance, perf)
		if NeedsAttention(perf.AveragePercentage, threshold) {
			report.AreasNeedingAttention = append(report.AreasNeedingAttention, title)
		}
	}

	return report
}
