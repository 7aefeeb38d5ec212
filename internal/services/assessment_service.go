package services

import (
	"context"
	"fmt"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/edupulse/assessment-portal/internal/validator"
	"gorm.io/datatypes"
)

// AssessmentService covers the authoring lifecycle: draft CRUD, publication and
// archival. Students only ever see published assessments matching their cohort.
type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, creator *models.User) (*models.Assessment, error)
	GetByID(ctx context.Context, id uint, user *models.User) (*models.Assessment, error)
	List(ctx context.Context, req *ListAssessmentsRequest, user *models.User) ([]*models.Assessment, int64, error)
	Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, user *models.User) (*models.Assessment, error)
	Delete(ctx context.Context, id uint, user *models.User) error
	Publish(ctx context.Context, id uint, user *models.User) (*models.Assessment, error)
	Archive(ctx context.Context, id uint, user *models.User) (*models.Assessment, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateAssessmentRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	TimeLimit   *int             `json:"time_limit" validate:"omitempty,min=1,max=300"`
	Criteria    models.Criteria  `json:"criteria"`
	Sections    []models.Section `json:"sections"`
}

// UpdateAssessmentRequest replaces the whole document. Historical attempts are not
// affected: they score against their own frozen section snapshot.
type UpdateAssessmentRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	TimeLimit   *int             `json:"time_limit" validate:"omitempty,min=1,max=300"`
	Criteria    models.Criteria  `json:"criteria"`
	Sections    []models.Section `json:"sections"`
}

type ListAssessmentsRequest struct {
	Status    *models.AssessmentStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	Limit     int                      `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int                      `json:"offset" validate:"omitempty,min=0"`
	SortBy    string                   `json:"sort_by" validate:"omitempty,oneof=title created_at updated_at"`
	SortOrder string                   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type assessmentService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
}

func NewAssessmentService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, creator *models.User) (*models.Assessment, error) {
	if !creator.IsStaff() {
		return nil, NewPermissionError(creator.ID, 0, "assessment", "create", "staff role required")
	}

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	// Drafts may be structurally incomplete, but configured scales must be sound.
	if errs := s.validator.Scale().ValidateSections(req.Sections, false); len(errs) > 0 {
		return nil, errs
	}

	assessment := &models.Assessment{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusDraft,
		TimeLimit:   req.TimeLimit,
		Criteria:    datatypes.NewJSONType(req.Criteria),
		Sections:    datatypes.NewJSONType(req.Sections),
		Stats:       datatypes.NewJSONType(models.CohortStats{}),
		CreatedBy:   creator.ID,
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.logger.Info("Assessment created", "assessment_id", assessment.ID, "creator_id", creator.ID, "title", assessment.Title)
	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint, user *models.User) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if !user.IsStaff() {
		// Students only see published assessments assigned to their cohort.
		if assessment.Status != models.StatusPublished || !assessment.Criteria.Data().Matches(user) {
			return nil, ErrAssessmentNotFound
		}
	}
	return assessment, nil
}

func (s *assessmentService) List(ctx context.Context, req *ListAssessmentsRequest, user *models.User) ([]*models.Assessment, int64, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	filters := repositories.AssessmentFilters{
		Status:    req.Status,
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if !user.IsStaff() {
		published := models.StatusPublished
		filters.Status = &published
		filters.Course = user.Course
	}

	assessments, total, err := s.repo.Assessment().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}

	if !user.IsStaff() {
		// The course filter is coarse; specialization matching happens here.
		matched := assessments[:0]
		for _, a := range assessments {
			if a.Criteria.Data().Matches(user) {
				matched = append(matched, a)
			}
		}
		removed := int64(len(assessments) - len(matched))
		assessments = matched
		total -= removed
	}

	return assessments, total, nil
}

func (s *assessmentService) Update(ctx context.Context, id uint, req *UpdateAssessmentRequest, user *models.User) (*models.Assessment, error) {
	assessment, err := s.getForAuthoring(ctx, id, user, "update")
	if err != nil {
		return nil, err
	}
	if assessment.Status == models.StatusArchived {
		return nil, ErrAssessmentNotEditable
	}

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	forPublish := assessment.Status == models.StatusPublished
	if errs := s.validator.Scale().ValidateSections(req.Sections, forPublish); len(errs) > 0 {
		return nil, errs
	}

	assessment.Title = req.Title
	assessment.Description = req.Description
	assessment.TimeLimit = req.TimeLimit
	assessment.Criteria = datatypes.NewJSONType(req.Criteria)
	assessment.Sections = datatypes.NewJSONType(req.Sections)

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.logger.Info("Assessment updated", "assessment_id", assessment.ID, "user_id", user.ID)
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, id uint, user *models.User) error {
	if _, err := s.getForAuthoring(ctx, id, user, "delete"); err != nil {
		return err
	}

	hasAttempts, err := s.repo.Attempt().HasAttempts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check attempts: %w", err)
	}
	if hasAttempts {
		return ErrAssessmentNotDeletable
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.logger.Info("Assessment deleted", "assessment_id", id, "user_id", user.ID)
	return nil
}

// ===== LIFECYCLE TRANSITIONS =====

func (s *assessmentService) Publish(ctx context.Context, id uint, user *models.User) (*models.Assessment, error) {
	assessment, err := s.getForAuthoring(ctx, id, user, "publish")
	if err != nil {
		return nil, err
	}
	if assessment.Status != models.StatusDraft {
		return nil, ErrInvalidStatusChange
	}

	if errs := s.validator.Scale().ValidateSections(assessment.Sections.Data(), true); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Assessment().UpdateStatus(ctx, id, models.StatusPublished); err != nil {
		return nil, fmt.Errorf("failed to publish assessment: %w", err)
	}
	assessment.Status = models.StatusPublished

	s.logger.Info("Assessment published", "assessment_id", id, "user_id", user.ID)
	return assessment, nil
}

func (s *assessmentService) Archive(ctx context.Context, id uint, user *models.User) (*models.Assessment, error) {
	assessment, err := s.getForAuthoring(ctx, id, user, "archive")
	if err != nil {
		return nil, err
	}
	if assessment.Status != models.StatusPublished {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.Assessment().UpdateStatus(ctx, id, models.StatusArchived); err != nil {
		return nil, fmt.Errorf("failed to archive assessment: %w", err)
	}
	assessment.Status = models.StatusArchived

	s.logger.Info("Assessment archived", "assessment_id", id, "user_id", user.ID)
	return assessment, nil
}

func (s *assessmentService) getForAuthoring(ctx context.Context, id uint, user *models.User, action string) (*models.Assessment, error) {
	if !user.IsStaff() {
		return nil, NewPermissionError(user.ID, id, "assessment", action, "staff role required")
	}
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}
