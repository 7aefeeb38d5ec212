package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusPublished AssessmentStatus = "published"
	StatusArchived  AssessmentStatus = "archived"
)

// ScaleOptions is the rating scale a question is answered on. Labels carries one
// entry per point on the scale, so len(Labels) == Max-Min+1 for a valid scale.
type ScaleOptions struct {
	Min      int      `json:"min"`
	Max      int      `json:"max"`
	MinLabel string   `json:"min_label"`
	MaxLabel string   `json:"max_label"`
	Labels   []string `json:"labels"`
}

type Question struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	IsRequired bool         `json:"is_required"`
	Scale      ScaleOptions `json:"scale"`
}

type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Criteria restricts which student cohorts an assessment is assigned to.
type Criteria struct {
	Courses             []Course `json:"courses"`
	PGDMSpecializations []string `json:"pgdm_specializations,omitempty"`
}

// Matches reports whether a student's academic profile falls inside the criteria.
func (c Criteria) Matches(u *User) bool {
	if u.Course == nil {
		return false
	}
	matched := false
	for _, course := range c.Courses {
		if course == *u.Course {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	if *u.Course == CoursePGDM && len(c.PGDMSpecializations) > 0 {
		if u.PGDMSpecialization == nil {
			return false
		}
		for _, spec := range c.PGDMSpecializations {
			if spec == *u.PGDMSpecialization {
				return true
			}
		}
		return false
	}
	return true
}

// Assessment is stored document-style: sections, criteria and cohort stats live in
// jsonb columns and updates replace the whole document. Attempts never reference
// these columns directly; they carry their own frozen copy of the section shape.
type Assessment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description string           `json:"description" gorm:"type:text" validate:"max=1000"`
	Status      AssessmentStatus `json:"status" gorm:"default:draft;index" validate:"omitempty,oneof=draft published archived"`
	TimeLimit   *int             `json:"time_limit" validate:"omitempty,min=1,max=300"` // minutes

	Criteria datatypes.JSONType[Criteria]    `json:"criteria" gorm:"type:jsonb"`
	Sections datatypes.JSONType[[]Section]   `json:"sections" gorm:"type:jsonb"`
	Stats    datatypes.JSONType[CohortStats] `json:"stats" gorm:"type:jsonb"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Creator User `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// TotalQuestions counts questions across all sections.
func (a *Assessment) TotalQuestions() int {
	total := 0
	for _, sec := range a.Sections.Data() {
		total += len(sec.Questions)
	}
	return total
}
