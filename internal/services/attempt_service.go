package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/assessment-portal/internal/cache"
	"github.com/edupulse/assessment-portal/internal/events"
	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/scoring"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/edupulse/assessment-portal/internal/validator"
	"gorm.io/datatypes"
)

// AttemptService runs the student side of an assessment: starting an attempt,
// answering, and the one-shot submission that freezes the score.
type AttemptService interface {
	Start(ctx context.Context, assessmentID uint, student *models.User) (*models.AttemptRecord, error)
	Submit(ctx context.Context, req *SubmitAttemptRequest, student *models.User) (*SubmitResult, error)
	GetByID(ctx context.Context, id uint, user *models.User) (*models.AttemptRecord, error)
	GetCurrent(ctx context.Context, assessmentID uint, student *models.User) (*models.AttemptRecord, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type SubmitAttemptRequest struct {
	AssessmentID uint           `json:"assessment_id" validate:"required"`
	Answers      map[string]int `json:"answers" validate:"required"`
	TimeSpent    int            `json:"time_spent" validate:"min=0"`
}

type SubmitResult struct {
	AttemptID            uint                  `json:"attempt_id"`
	AssessmentID         uint                  `json:"assessment_id"`
	SectionScores        []models.SectionScore `json:"section_scores"`
	OverallPercentage    float64               `json:"overall_percentage"`
	OverallAverageRating float64               `json:"overall_average_rating"`
	QuestionsAnswered    int                   `json:"questions_answered"`
	TotalQuestions       int                   `json:"total_questions"`
	TimeSpent            int                   `json:"time_spent"`
	CompletedAt          time.Time             `json:"completed_at"`
}

type attemptService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	stats     StatsService
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewAttemptService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *validator.Validator,
	stats StatsService,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		stats:     stats,
		cache:     cacheService,
		publisher: publisher,
	}
}

// ===== LIFECYCLE =====

// Start opens an attempt on a published assessment. Starting is idempotent: if the
// student already has an in_progress attempt it is returned as-is, snapshot and
// started-at untouched. The attempt freezes the assessment's current section shape
// so later edits to the document cannot reinterpret this attempt.
func (s *attemptService) Start(ctx context.Context, assessmentID uint, student *models.User) (*models.AttemptRecord, error) {
	if student.Role != models.RoleStudent {
		return nil, NewPermissionError(student.ID, assessmentID, "attempt", "start", "student role required")
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.Status != models.StatusPublished {
		return nil, ErrAssessmentNotPublished
	}
	if !assessment.Criteria.Data().Matches(student) {
		return nil, ErrNotEligible
	}

	existing, err := s.repo.Attempt().GetInProgress(ctx, assessmentID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing attempt: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if err := s.checkNotSubmitted(ctx, assessmentID, student.ID); err != nil {
		return nil, err
	}

	attempt := &models.AttemptRecord{
		AssessmentID: assessmentID,
		StudentID:    student.ID,
		Status:       models.AttemptInProgress,
		Answers:      datatypes.NewJSONType(map[string]int{}),
		Sections:     datatypes.NewJSONType(assessment.Sections.Data()),
		StartedAt:    time.Now(),
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		// A concurrent Start may have won the unique index race; resume theirs.
		if existing, getErr := s.repo.Attempt().GetInProgress(ctx, assessmentID, student.ID); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.logger.Info("Attempt started",
		"attempt_id", attempt.ID,
		"assessment_id", assessmentID,
		"student_id", student.ID)
	return attempt, nil
}

// Submit scores the answers against the attempt's frozen snapshot and performs the
// in_progress to completed transition exactly once. Stats recomputation, cache
// invalidation and event publication all run after the transition and are
// best-effort: their failure never fails a submission that already persisted.
func (s *attemptService) Submit(ctx context.Context, req *SubmitAttemptRequest, student *models.User) (*SubmitResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	attempt, err := s.repo.Attempt().GetInProgress(ctx, req.AssessmentID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt == nil {
		if err := s.checkNotSubmitted(ctx, req.AssessmentID, student.ID); err != nil {
			return nil, err
		}
		return nil, ErrAttemptNotInProgress
	}

	snapshot := attempt.Sections.Data()
	if errs := s.validator.Scale().ValidateAnswers(snapshot, req.Answers); len(errs) > 0 {
		return nil, errs
	}

	score, err := scoring.ScoreAttempt(snapshot, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScaleConfiguration, err)
	}

	completedAt := time.Now()
	patch := repositories.SubmitPatch{
		Answers:              req.Answers,
		SectionScores:        score.SectionScores,
		OverallPercentage:    score.OverallPercentage,
		OverallAverageRating: score.OverallAverageRating,
		TimeSpent:            req.TimeSpent,
		CompletedAt:          completedAt,
	}

	completed, err := s.repo.Attempt().CompleteAttempt(ctx, req.AssessmentID, student.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}
	if !completed {
		// The conditional update matched nothing: a concurrent submit won the race.
		return nil, ErrAttemptAlreadySubmitted
	}

	s.logger.Info("Attempt submitted",
		"attempt_id", attempt.ID,
		"assessment_id", req.AssessmentID,
		"student_id", student.ID,
		"overall_percentage", score.OverallPercentage)

	s.afterSubmit(ctx, attempt, score, req.TimeSpent, completedAt)

	return &SubmitResult{
		AttemptID:            attempt.ID,
		AssessmentID:         req.AssessmentID,
		SectionScores:        score.SectionScores,
		OverallPercentage:    score.OverallPercentage,
		OverallAverageRating: score.OverallAverageRating,
		QuestionsAnswered:    score.QuestionsAnswered,
		TotalQuestions:       score.TotalQuestions,
		TimeSpent:            req.TimeSpent,
		CompletedAt:          completedAt,
	}, nil
}

func (s *attemptService) GetByID(ctx context.Context, id uint, user *models.User) (*models.AttemptRecord, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if !user.IsStaff() && attempt.StudentID != user.ID {
		return nil, NewPermissionError(user.ID, id, "attempt", "read", "not the attempt owner")
	}
	return attempt, nil
}

func (s *attemptService) GetCurrent(ctx context.Context, assessmentID uint, student *models.User) (*models.AttemptRecord, error) {
	attempt, err := s.repo.Attempt().GetInProgress(ctx, assessmentID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// ===== HELPERS =====

func (s *attemptService) checkNotSubmitted(ctx context.Context, assessmentID uint, studentID string) error {
	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{
		AssessmentID: &assessmentID,
		StudentID:    &studentID,
	})
	if err != nil {
		return fmt.Errorf("failed to check attempt history: %w", err)
	}
	for _, a := range attempts {
		if a.Status == models.AttemptCompleted {
			return ErrAttemptAlreadySubmitted
		}
	}
	return nil
}

func (s *attemptService) afterSubmit(ctx context.Context, attempt *models.AttemptRecord, score scoring.AttemptScore, timeSpent int, completedAt time.Time) {
	if _, err := s.stats.Recompute(ctx, attempt.AssessmentID); err != nil {
		s.logger.Warn("Post-submit stats recompute failed",
			"assessment_id", attempt.AssessmentID, "error", err)
	}

	if err := s.cache.Delete(ctx, assessmentAnalyticsCacheKey(attempt.AssessmentID)); err != nil {
		s.logger.Warn("Analytics cache invalidation failed",
			"assessment_id", attempt.AssessmentID, "error", err)
	}
	if err := s.cache.DeletePattern(ctx, studentAnalyticsCachePattern(attempt.StudentID)); err != nil {
		s.logger.Warn("Student analytics cache invalidation failed",
			"student_id", attempt.StudentID, "error", err)
	}

	event := events.NewAttemptSubmittedEvent(
		attempt.AssessmentID, attempt.ID, attempt.StudentID,
		score.OverallPercentage, timeSpent, completedAt)
	if err := s.publisher.PublishAttemptSubmitted(ctx, event); err != nil {
		s.logger.Warn("Attempt event publish failed",
			"attempt_id", attempt.ID, "error", err)
	}
}
