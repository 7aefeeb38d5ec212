package scoring

import (
	"math"
	"sort"

	"github.com/edupulse/assessment-portal/internal/models"
)

// SectionAggregate is one section's cohort-wide performance.
type SectionAggregate struct {
	SectionID              string  `json:"section_id"`
	SectionTitle           string  `json:"section_title"`
	AveragePercentage      float64 `json:"average_percentage"`
	AverageRating          float64 `json:"average_rating"`
	StudentsBelowThreshold int     `json:"students_below_threshold"`
	AttemptCount           int     `json:"attempt_count"`
}

// SectionFlag is one section of one student's breakdown, classified.
type SectionFlag struct {
	SectionID      string  `json:"section_id"`
	SectionTitle   string  `json:"section_title"`
	Percentage     float64 `json:"percentage"`
	NeedsAttention bool    `json:"needs_attention"`
}

// StudentAttention is a student whose overall percentage fell below the threshold.
type StudentAttention struct {
	StudentID         string        `json:"student_id"`
	OverallPercentage float64       `json:"overall_percentage"`
	Sections          []SectionFlag `json:"sections"`
}

// CohortReport is the full aggregation over one assessment's attempts.
type CohortReport struct {
	Stats                    models.CohortStats `json:"stats"`
	SectionsRankedByWeakness []SectionAggregate `json:"sections_ranked_by_weakness"`
	StudentsNeedingAttention []StudentAttention `json:"students_needing_attention"`
}

// AggregateCohort aggregates all attempts of one assessment. Only completed
// attempts contribute to score aggregates; started-but-unfinished attempts count
// toward the completion rate denominator. Section ranking sorts ascending by
// average percentage with a stable sort, so sections tying on the average keep
// the order in which they first appeared in the attempts.
func AggregateCohort(attempts []*models.AttemptRecord, threshold float64) *CohortReport {
	report := &CohortReport{
		SectionsRankedByWeakness: []SectionAggregate{},
		StudentsNeedingAttention: []StudentAttention{},
	}

	type sectionAccum struct {
		title          string
		percentageSum  float64
		ratingSum      float64
		belowThreshold int
		count          int
	}
	accums := make(map[string]*sectionAccum)
	var sectionOrder []string

	var (
		started      int
		completed    int
		scoreSum     float64
		timeSpentSum int
	)

	for _, attempt := range attempts {
		if attempt.Status != models.AttemptNotStarted {
			started++
		}
		if attempt.Status != models.AttemptCompleted {
			continue
		}
		completed++
		scoreSum += attempt.OverallPercentage
		timeSpentSum += attempt.TimeSpent

		var flags []SectionFlag
		for _, ss := range attempt.SectionScores.Data() {
			accum, ok := accums[ss.SectionID]
			if !ok {
				accum = &sectionAccum{title: ss.SectionTitle}
				accums[ss.SectionID] = accum
				sectionOrder = append(sectionOrder, ss.SectionID)
			}
			accum.percentageSum += ss.Percentage
			accum.ratingSum += ss.AverageRating
			accum.count++
			if NeedsAttention(ss.Percentage, threshold) {
				accum.belowThreshold++
			}
			flags = append(flags, SectionFlag{
				SectionID:      ss.SectionID,
				SectionTitle:   ss.SectionTitle,
				Percentage:     ss.Percentage,
				NeedsAttention: NeedsAttention(ss.Percentage, threshold),
			})
		}

		if NeedsAttention(attempt.OverallPercentage, threshold) {
			report.StudentsNeedingAttention = append(report.StudentsNeedingAttention, StudentAttention{
				StudentID:         attempt.StudentID,
				OverallPercentage: attempt.OverallPercentage,
				Sections:          flags,
			})
		}
	}

	report.Stats.TotalStarted = started
	report.Stats.TotalCompleted = completed
	if started > 0 {
		report.Stats.CompletionRate = round1(float64(completed) / float64(started) * 100)
	}
	if completed > 0 {
		report.Stats.AverageScore = round1(scoreSum / float64(completed))
		report.Stats.AverageTimeSpent = int(math.Round(float64(timeSpentSum) / float64(completed)))
	}

	for _, id := range sectionOrder {
		accum := accums[id]
		report.SectionsRankedByWeakness = append(report.SectionsRankedByWeakness, SectionAggregate{
			SectionID:              id,
			SectionTitle:           accum.title,
			AveragePercentage:      round1(accum.percentageSum / float64(accum.count)),
			AverageRating:          round1(accum.ratingSum / float64(accum.count)),
			StudentsBelowThreshold: accum.belowThreshold,
			AttemptCount:           accum.count,
		})
	}
	sort.SliceStable(report.SectionsRankedByWeakness, func(i, j int) bool {
		return report.SectionsRankedByWeakness[i].AveragePercentage < report.SectionsRankedByWeakness[j].AveragePercentage
	})

	return report
}
