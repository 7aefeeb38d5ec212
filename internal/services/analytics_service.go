package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/assessment-portal/internal/cache"
	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/scoring"
	"github.com/edupulse/assessment-portal/internal/utils"
)

// AnalyticsService exposes the scoring aggregates: per-assessment cohort reports
// for staff and per-student cross-assessment reports.
type AnalyticsService interface {
	GetAssessmentAnalytics(ctx context.Context, assessmentID uint, user *models.User) (*AssessmentReport, error)
	GetStudentAnalytics(ctx context.Context, studentID string, user *models.User) (*scoring.StudentReport, error)
}

// AssessmentReport is the cohort report served to staff dashboards.
type AssessmentReport struct {
	AssessmentID             uint                       `json:"assessment_id"`
	Title                    string                     `json:"title"`
	Stats                    models.CohortStats         `json:"stats"`
	SectionsRankedByWeakness []scoring.SectionAggregate `json:"sections_ranked_by_weakness"`
	StudentsNeedingAttention []scoring.StudentAttention `json:"students_needing_attention"`
	GeneratedAt              time.Time                  `json:"generated_at"`
}

const analyticsCacheTTL = 5 * time.Minute

func assessmentAnalyticsCacheKey(assessmentID uint) string {
	return fmt.Sprintf("analytics:assessment:%d", assessmentID)
}

func studentAnalyticsCachePattern(studentID string) string {
	return fmt.Sprintf("analytics:student:%s", studentID)
}

type analyticsService struct {
	repo      repositories.Repository
	logger    utils.Logger
	stats     StatsService
	cache     cache.CacheService
	threshold float64
}

func NewAnalyticsService(
	repo repositories.Repository,
	logger utils.Logger,
	stats StatsService,
	cacheService cache.CacheService,
	threshold float64,
) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		logger:    logger,
		stats:     stats,
		cache:     cacheService,
		threshold: threshold,
	}
}

func (s *analyticsService) GetAssessmentAnalytics(ctx context.Context, assessmentID uint, user *models.User) (*AssessmentReport, error) {
	if !user.IsStaff() {
		return nil, NewPermissionError(user.ID, assessmentID, "analytics", "read", "staff role required")
	}

	cacheKey := assessmentAnalyticsCacheKey(assessmentID)
	var cached AssessmentReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !cache.IsCacheMiss(err) {
		s.logger.Warn("Analytics cache read failed", "assessment_id", assessmentID, "error", err)
	}

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

	cohort := scoring.AggregateCohort(attempts, s.threshold)

	report := &AssessmentReport{
		AssessmentID:             assessmentID,
		Title:                    assessment.Title,
		Stats:                    cohort.Stats,
		SectionsRankedByWeakness: cohort.SectionsRankedByWeakness,
		StudentsNeedingAttention: cohort.StudentsNeedingAttention,
		GeneratedAt:              time.Now(),
	}

	// Reads also refresh the persisted stats blob, healing any recompute a
	// submission lost.
	if stats, err := s.stats.Recompute(ctx, assessmentID); err != nil {
		s.logger.Warn("On-read stats recompute failed", "assessment_id", assessmentID, "error", err)
	} else {
		report.Stats = *stats
	}

	if err := s.cache.Set(ctx, cacheKey, report, analyticsCacheTTL); err != nil {
		s.logger.Warn("Analytics cache write failed", "assessment_id", assessmentID, "error", err)
	}

	return report, nil
}

func (s *analyticsService) GetStudentAnalytics(ctx context.Context, studentID string, user *models.User) (*scoring.StudentReport, error) {
	if !user.IsStaff() && user.ID != studentID {
		return nil, NewPermissionError(user.ID, 0, "analytics", "read", "not the student's own report")
	}

	cacheKey := studentAnalyticsCachePattern(studentID)
	var cached scoring.StudentReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !cache.IsCacheMiss(err) {
		s.logger.Warn("Analytics cache read failed", "student_id", studentID, "error", err)
	}

	attempts, err := s.repo.Attempt().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	report := scoring.AggregateStudent(attempts, s.threshold)

	if err := s.cache.Set(ctx, cacheKey, report, analyticsCacheTTL); err != nil {
		s.logger.Warn("Analytics cache write failed", "student_id", studentID, "error", err)
	}

	return report, nil
}
