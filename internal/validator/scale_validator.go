package validator

import (
	"fmt"

	apperrors "github.com/edupulse/assessment-portal/internal/errors"
	"github.com/edupulse/assessment-portal/internal/models"
)

// ScaleValidator enforces the authoring-time invariants of rating scales and
// section structure. A scale that fails here must never reach scoring.
type ScaleValidator struct{}

func NewScaleValidator() *ScaleValidator {
	return &ScaleValidator{}
}

// ValidateScale checks a single question scale: min < max and one label per point.
func (sv *ScaleValidator) ValidateScale(field string, scale models.ScaleOptions) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if scale.Min >= scale.Max {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			field, "scale min must be less than scale max", "scale_bounds", scale.Min))
		return errs
	}
	if want := scale.Max - scale.Min + 1; len(scale.Labels) != want {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			field, fmt.Sprintf("must carry %d labels, got %d", want, len(scale.Labels)),
			"scale_labels", len(scale.Labels)))
	}
	return errs
}

// ValidateSections validates the section tree of an assessment document. With
// forPublish set, the structural requirements of a publishable assessment apply:
// at least one section and no question-less sections. Draft documents may be
// structurally incomplete but every configured scale must already be sound.
func (sv *ScaleValidator) ValidateSections(sections []models.Section, forPublish bool) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if forPublish && len(sections) == 0 {
		errs = append(errs, *apperrors.NewValidationError(
			"sections", "a publishable assessment requires at least one section", nil))
	}

	seenSections := make(map[string]bool)
	seenQuestions := make(map[string]bool)
	for i, sec := range sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if sec.ID == "" {
			errs = append(errs, *apperrors.NewValidationError(prefix+".id", "is required", nil))
		} else if seenSections[sec.ID] {
			errs = append(errs, *apperrors.NewValidationError(prefix+".id", "duplicate section id", sec.ID))
		}
		seenSections[sec.ID] = true

		if sec.Title == "" {
			errs = append(errs, *apperrors.NewValidationError(prefix+".title", "is required", nil))
		}
		if forPublish && len(sec.Questions) == 0 {
			errs = append(errs, *apperrors.NewValidationError(
				prefix+".questions", "a publishable section requires at least one question", nil))
		}

		for j, q := range sec.Questions {
			qPrefix := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if q.ID == "" {
				errs = append(errs, *apperrors.NewValidationError(qPrefix+".id", "is required", nil))
			} else if seenQuestions[q.ID] {
				errs = append(errs, *apperrors.NewValidationError(qPrefix+".id", "duplicate question id", q.ID))
			}
			seenQuestions[q.ID] = true

			if q.Text == "" {
				errs = append(errs, *apperrors.NewValidationError(qPrefix+".text", "is required", nil))
			}
			errs = append(errs, sv.ValidateScale(qPrefix+".scale", q.Scale)...)
		}
	}

	return errs
}

// ValidateAnswers bounds-checks a submitted answer map against the attempt's
// frozen section snapshot. Unknown question ids and out-of-range values are
// rejected here, at the boundary, so scoring can trust its input.
func (sv *ScaleValidator) ValidateAnswers(sections []models.Section, answers map[string]int) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	questions := make(map[string]models.Question)
	for _, sec := range sections {
		for _, q := range sec.Questions {
			questions[q.ID] = q
		}
	}

	for id, value := range answers {
		q, ok := questions[id]
		if !ok {
			errs = append(errs, *apperrors.NewValidationError(
				"answers", fmt.Sprintf("unknown question id %q", id), id))
			continue
		}
		if value < q.Scale.Min || value > q.Scale.Max {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(
				"answers",
				fmt.Sprintf("value %d for question %q outside scale [%d,%d]", value, id, q.Scale.Min, q.Scale.Max),
				"scale_bounds", value))
		}
	}

	// Required questions must be answered on submission.
	for _, sec := range sections {
		for _, q := range sec.Questions {
			if q.IsRequired {
				if _, ok := answers[q.ID]; !ok {
					errs = append(errs, *apperrors.NewValidationError(
						"answers", fmt.Sprintf("required question %q is unanswered", q.ID), nil))
				}
			}
		}
	}

	return errs
}
