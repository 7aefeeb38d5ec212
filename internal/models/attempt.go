package models

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptNotStarted AttemptStatus = "not_started"
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// AttemptRecord is one student's run through an assessment. Sections holds a frozen
// copy of the assessment's section/question shape taken when the attempt started, so
// later edits to the assessment document cannot reinterpret historical scores.
type AttemptRecord struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	AssessmentID uint          `json:"assessment_id" gorm:"not null;index;uniqueIndex:idx_attempt_assessment_student"`
	StudentID    string        `json:"student_id" gorm:"not null;size:255;index;uniqueIndex:idx_attempt_assessment_student"`
	Status       AttemptStatus `json:"status" gorm:"default:in_progress;index"`

	Answers  datatypes.JSONType[map[string]int] `json:"answers" gorm:"type:jsonb"`
	Sections datatypes.JSONType[[]Section]      `json:"sections" gorm:"type:jsonb"`

	// Scoring (set once, on submission)
	SectionScores        datatypes.JSONType[[]SectionScore] `json:"section_scores" gorm:"type:jsonb"`
	OverallPercentage    float64                            `json:"overall_percentage"`
	OverallAverageRating float64                            `json:"overall_average_rating"`

	TimeSpent   int        `json:"time_spent"` // seconds
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Assessment Assessment `json:"-" gorm:"foreignKey:AssessmentID"`
	Student    User       `json:"-" gorm:"foreignKey:StudentID"`
}

func (AttemptRecord) TableName() string {
	return "attempt_records"
}

// SectionScore is the computed result for one section of one attempt.
type SectionScore struct {
	SectionID         string  `json:"section_id"`
	SectionTitle      string  `json:"section_title"`
	Score             float64 `json:"score"`
	MaxPossibleScore  float64 `json:"max_possible_score"`
	Percentage        float64 `json:"percentage"`
	AverageRating     float64 `json:"average_rating"`
	QuestionsAnswered int     `json:"questions_answered"`
	TotalQuestions    int     `json:"total_questions"`
}
