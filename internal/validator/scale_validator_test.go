package validator

import (
	"testing"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/stretchr/testify/assert"
)

func validSection() models.Section {
	return models.Section{
		ID:    "s1",
		Title: "Communication",
		Questions: []models.Question{
			{
				ID:   "q1",
				Text: "Communicates clearly",
				Scale: models.ScaleOptions{
					Min: 1, Max: 5,
					Labels: []string{"Never", "Rarely", "Sometimes", "Often", "Always"},
				},
			},
		},
	}
}

func TestValidateScaleDegenerate(t *testing.T) {
	sv := NewScaleValidator()

	errs := sv.ValidateScale("scale", models.ScaleOptions{Min: 3, Max: 3})
	assert.Len(t, errs, 1)
	assert.Equal(t, "scale_bounds", errs[0].Rule)

	errs = sv.ValidateScale("scale", models.ScaleOptions{Min: 5, Max: 1})
	assert.Len(t, errs, 1)
}

func TestValidateScaleLabelCount(t *testing.T) {
	sv := NewScaleValidator()

	errs := sv.ValidateScale("scale", models.ScaleOptions{
		Min: 1, Max: 5,
		Labels: []string{"Low", "High"},
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "scale_labels", errs[0].Rule)
}

func TestValidateSectionsForPublish(t *testing.T) {
	sv := NewScaleValidator()

	errs := sv.ValidateSections(nil, true)
	assert.NotEmpty(t, errs)

	// Draft with no sections is fine.
	errs = sv.ValidateSections(nil, false)
	assert.Empty(t, errs)

	// Publishable section without questions is rejected.
	empty := models.Section{ID: "s1", Title: "Empty"}
	errs = sv.ValidateSections([]models.Section{empty}, true)
	assert.NotEmpty(t, errs)

	errs = sv.ValidateSections([]models.Section{validSection()}, true)
	assert.Empty(t, errs)
}

func TestValidateSectionsDuplicateIDs(t *testing.T) {
	sv := NewScaleValidator()

	a := validSection()
	b := validSection()
	errs := sv.ValidateSections([]models.Section{a, b}, false)
	assert.NotEmpty(t, errs)
}

func TestValidateAnswers(t *testing.T) {
	sv := NewScaleValidator()
	sections := []models.Section{validSection()}

	assert.Empty(t, sv.ValidateAnswers(sections, map[string]int{"q1": 3}))

	errs := sv.ValidateAnswers(sections, map[string]int{"q1": 9})
	assert.Len(t, errs, 1)
	assert.Equal(t, "scale_bounds", errs[0].Rule)

	errs = sv.ValidateAnswers(sections, map[string]int{"nope": 3})
	assert.Len(t, errs, 1)
}

func TestValidateAnswersRequiredQuestions(t *testing.T) {
	sv := NewScaleValidator()
	sec := validSection()
	sec.Questions[0].IsRequired = true

	errs := sv.ValidateAnswers([]models.Section{sec}, map[string]int{})
	assert.Len(t, errs, 1)

	// Optional questions may simply be absent.
	sec.Questions[0].IsRequired = false
	errs = sv.ValidateAnswers([]models.Section{sec}, map[string]int{})
	assert.Empty(t, errs)
}
