package models

import "time"

// CohortStats is the denormalized summary persisted on an assessment. It is always
// a full recompute over every attempt at that point in time, never maintained
// incrementally, so a stale blob is corrected by the next recompute.
type CohortStats struct {
	TotalEligibleStudents int       `json:"total_eligible_students"`
	TotalAssigned         int       `json:"total_assigned"`
	TotalStarted          int       `json:"total_started"`
	TotalCompleted        int       `json:"total_completed"`
	CompletionRate        float64   `json:"completion_rate"`
	AverageScore          float64   `json:"average_score"`
	AverageTimeSpent      int       `json:"average_time_spent"` // seconds
	LastCalculatedAt      time.Time `json:"last_calculated_at"`
}
