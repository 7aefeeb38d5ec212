package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/scoring"
	"github.com/edupulse/assessment-portal/internal/utils"
)

// StatsService recomputes an assessment's cohort statistics from scratch. The
// recompute is non-transactional with respect to submissions: it runs after a
// submit (best-effort) and again on analytics reads, so a lost post-submit
// recompute heals on the next read.
type StatsService interface {
	Recompute(ctx context.Context, assessmentID uint) (*models.CohortStats, error)
}

type statsService struct {
	repo      repositories.Repository
	logger    utils.Logger
	threshold float64
}

func NewStatsService(repo repositories.Repository, logger utils.Logger, threshold float64) StatsService {
	return &statsService{
		repo:      repo,
		logger:    logger,
		threshold: threshold,
	}
}

func (s *statsService) Recompute(ctx context.Context, assessmentID uint) (*models.CohortStats, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	attempts, err := s.repo.Attempt().GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	report := scoring.AggregateCohort(attempts, s.threshold)
	stats := report.Stats

	eligible, err := s.repo.User().CountEligibleStudents(ctx, assessment.Criteria.Data())
	if err != nil {
		return nil, fmt.Errorf("failed to count eligible students: %w", err)
	}
	stats.TotalEligibleStudents = int(eligible)
	stats.TotalAssigned = len(attempts)
	stats.LastCalculatedAt = time.Now()

	if err := s.repo.Assessment().UpdateStats(ctx, assessmentID, stats); err != nil {
		return nil, fmt.Errorf("failed to persist stats: %w", err)
	}

	s.logger.Debug("Cohort stats recomputed",
		"assessment_id", assessmentID,
		"total_completed", stats.TotalCompleted,
		"average_score", stats.AverageScore)

	return &stats, nil
}
