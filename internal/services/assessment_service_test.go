package services

import (
	"context"
	"testing"

	apperrors "github.com/edupulse/assessment-portal/internal/errors"
	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessmentServiceForTest(store *fakeStore) AssessmentService {
	return NewAssessmentService(store, testLogger(), validator.New())
}

func TestAssessmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates draft", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)

		created, err := svc.Create(ctx, &CreateAssessmentRequest{
			Title:    "Soft Skills Review",
			Criteria: models.Criteria{Courses: []models.Course{models.CourseMCA}},
			Sections: twoSections(),
		}, admin("a1"))
		require.NoError(t, err)
		assert.Equal(t, models.StatusDraft, created.Status)
		assert.Equal(t, "a1", created.CreatedBy)
		assert.Equal(t, 3, created.TotalQuestions())
	})

	t.Run("rejects student caller", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)

		_, err := svc.Create(ctx, &CreateAssessmentRequest{Title: "X"}, student("s1", models.CourseMCA))
		var pe *PermissionError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)

		_, err := svc.Create(ctx, &CreateAssessmentRequest{}, admin("a1"))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects bad scale even on draft", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)

		sections := twoSections()
		sections[0].Questions[0].Scale = models.ScaleOptions{Min: 5, Max: 1}
		_, err := svc.Create(ctx, &CreateAssessmentRequest{
			Title:    "Broken",
			Sections: sections,
		}, admin("a1"))
		var verrs apperrors.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestAssessmentService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a complete draft", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusDraft, twoSections(), models.CourseMCA)

		published, err := svc.Publish(ctx, a.ID, admin("a1"))
		require.NoError(t, err)
		assert.Equal(t, models.StatusPublished, published.Status)
	})

	t.Run("rejects draft without sections", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusDraft, nil, models.CourseMCA)

		_, err := svc.Publish(ctx, a.ID, admin("a1"))
		var verrs apperrors.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("rejects publish of published", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusPublished, twoSections(), models.CourseMCA)

		_, err := svc.Publish(ctx, a.ID, admin("a1"))
		assert.ErrorIs(t, err, ErrInvalidStatusChange)
	})

	t.Run("archive requires published", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusDraft, twoSections(), models.CourseMCA)

		_, err := svc.Archive(ctx, a.ID, admin("a1"))
		assert.ErrorIs(t, err, ErrInvalidStatusChange)

		_, err = svc.Publish(ctx, a.ID, admin("a1"))
		require.NoError(t, err)
		archived, err := svc.Archive(ctx, a.ID, admin("a1"))
		require.NoError(t, err)
		assert.Equal(t, models.StatusArchived, archived.Status)
	})
}

func TestAssessmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes untouched assessment", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusDraft, twoSections(), models.CourseMCA)

		require.NoError(t, svc.Delete(ctx, a.ID, admin("a1")))
		_, err := svc.GetByID(ctx, a.ID, admin("a1"))
		assert.ErrorIs(t, err, ErrAssessmentNotFound)
	})

	t.Run("blocked once attempts exist", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		attemptSvc, _, _ := newAttemptServiceForTest(store)
		a := seedAssessment(t, store, models.StatusPublished, twoSections(), models.CourseMCA)

		_, err := attemptSvc.Start(ctx, a.ID, student("s1", models.CourseMCA))
		require.NoError(t, err)

		err = svc.Delete(ctx, a.ID, admin("a1"))
		assert.ErrorIs(t, err, ErrAssessmentNotDeletable)
	})
}

func TestAssessmentService_StudentVisibility(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newAssessmentServiceForTest(store)

	draft := seedAssessment(t, store, models.StatusDraft, twoSections(), models.CourseMCA)
	mca := seedAssessment(t, store, models.StatusPublished, twoSections(), models.CourseMCA)
	seedAssessment(t, store, models.StatusPublished, twoSections(), models.CourseMMS)

	stu := student("s1", models.CourseMCA)

	t.Run("list shows only published matching cohort", func(t *testing.T) {
		listed, total, err := svc.List(ctx, &ListAssessmentsRequest{}, stu)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, mca.ID, listed[0].ID)
	})

	t.Run("get hides drafts from students", func(t *testing.T) {
		_, err := svc.GetByID(ctx, draft.ID, stu)
		assert.ErrorIs(t, err, ErrAssessmentNotFound)
	})

	t.Run("staff sees everything", func(t *testing.T) {
		listed, total, err := svc.List(ctx, &ListAssessmentsRequest{}, admin("a1"))
		require.NoError(t, err)
		assert.Len(t, listed, 3)
		assert.Equal(t, int64(3), total)
	})
}

func TestAssessmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("full document replace", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusDraft, twoSections(), models.CourseMCA)

		updated, err := svc.Update(ctx, a.ID, &UpdateAssessmentRequest{
			Title:    "Revised Review",
			Criteria: models.Criteria{Courses: []models.Course{models.CourseMMS}},
			Sections: twoSections()[:1],
		}, admin("a1"))
		require.NoError(t, err)
		assert.Equal(t, "Revised Review", updated.Title)
		assert.Len(t, updated.Sections.Data(), 1)
		assert.Equal(t, []models.Course{models.CourseMMS}, updated.Criteria.Data().Courses)
	})

	t.Run("archived is immutable", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		a := seedAssessment(t, store, models.StatusArchived, twoSections(), models.CourseMCA)

		_, err := svc.Update(ctx, a.ID, &UpdateAssessmentRequest{
			Title:    "Nope",
			Sections: twoSections(),
		}, admin("a1"))
		assert.ErrorIs(t, err, ErrAssessmentNotEditable)
	})

	t.Run("does not rescore existing attempts", func(t *testing.T) {
		store := newFakeStore()
		svc := newAssessmentServiceForTest(store)
		attemptSvc, _, _ := newAttemptServiceForTest(store)
		a := seedAssessment(t, store, models.StatusPublished, twoSections(), models.CourseMCA)
		stu := student("s1", models.CourseMCA)

		started, err := attemptSvc.Start(ctx, a.ID, stu)
		require.NoError(t, err)

		// shrink the document under the open attempt
		_, err = svc.Update(ctx, a.ID, &UpdateAssessmentRequest{
			Title:    a.Title,
			Criteria: a.Criteria.Data(),
			Sections: twoSections()[:1],
		}, admin("a1"))
		require.NoError(t, err)

		// the attempt still scores against its own three-question snapshot
		result, err := attemptSvc.Submit(ctx, &SubmitAttemptRequest{
			AssessmentID: a.ID,
			Answers:      map[string]int{"c1": 5, "c2": 5, "t1": 5},
		}, stu)
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalQuestions)
		assert.InDelta(t, 100.0, result.OverallPercentage, 0.001)

		stored, err := store.Attempt().GetByID(ctx, started.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Sections.Data(), 2)
	})
}
