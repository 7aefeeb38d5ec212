package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAttemptSubmitted EventType = "attempt.submitted"
)

// AttemptSubmittedEvent is published after a submission is durably scored. Stats
// recomputation and downstream consumers (notifications, dashboards) hang off it;
// none of them can fail the submission that produced it.
type AttemptSubmittedEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	AssessmentID      uint      `json:"assessment_id"`
	AttemptID         uint      `json:"attempt_id"`
	StudentID         string    `json:"student_id"`
	OverallPercentage float64   `json:"overall_percentage"`
	TimeSpent         int       `json:"time_spent"`
	CompletedAt       time.Time `json:"completed_at"`
}

// NewAttemptSubmittedEvent builds a submission event with envelope metadata set.
func NewAttemptSubmittedEvent(assessmentID, attemptID uint, studentID string, percentage float64, timeSpent int, completedAt time.Time) *AttemptSubmittedEvent {
	return &AttemptSubmittedEvent{
		ID:                uuid.NewString(),
		Type:              EventAttemptSubmitted,
		Source:            "assessment-portal",
		Version:           "1.0",
		Timestamp:         time.Now(),
		AssessmentID:      assessmentID,
		AttemptID:         attemptID,
		StudentID:         studentID,
		OverallPercentage: percentage,
		TimeSpent:         timeSpent,
		CompletedAt:       completedAt,
	}
}
