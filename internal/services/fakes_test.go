package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/edupulse/assessment-portal/internal/cache"
	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeStore is an in-memory repositories.Repository used across the service tests.
type fakeStore struct {
	assessments      map[uint]*models.Assessment
	attempts         map[uint]*models.AttemptRecord
	nextAssessmentID uint
	nextAttemptID    uint
	eligibleStudents int64

	updateStatsErr error
	statsWrites    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assessments: make(map[uint]*models.Assessment),
		attempts:    make(map[uint]*models.AttemptRecord),
	}
}

func (f *fakeStore) Assessment() repositories.AssessmentRepository { return (*fakeAssessments)(f) }
func (f *fakeStore) Attempt() repositories.AttemptRepository       { return (*fakeAttempts)(f) }
func (f *fakeStore) User() repositories.UserRepository             { return (*fakeUsers)(f) }

// ===== ASSESSMENTS =====

type fakeAssessments fakeStore

func (f *fakeAssessments) Create(ctx context.Context, a *models.Assessment) error {
	f.nextAssessmentID++
	a.ID = f.nextAssessmentID
	a.CreatedAt = time.Now()
	f.assessments[a.ID] = a
	return nil
}

func (f *fakeAssessments) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAssessments) Update(ctx context.Context, a *models.Assessment) error {
	if _, ok := f.assessments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *a
	f.assessments[a.ID] = &copied
	return nil
}

func (f *fakeAssessments) Delete(ctx context.Context, id uint) error {
	delete(f.assessments, id)
	return nil
}

func (f *fakeAssessments) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	var out []*models.Assessment
	for _, a := range f.assessments {
		if filters.Status != nil && a.Status != *filters.Status {
			continue
		}
		if filters.CreatedBy != nil && a.CreatedBy != *filters.CreatedBy {
			continue
		}
		if filters.Course != nil {
			matched := false
			for _, c := range a.Criteria.Data().Courses {
				if c == *filters.Course {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeAssessments) UpdateStatus(ctx context.Context, id uint, status models.AssessmentStatus) error {
	a, ok := f.assessments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAssessments) UpdateStats(ctx context.Context, id uint, stats models.CohortStats) error {
	if f.updateStatsErr != nil {
		return f.updateStatsErr
	}
	a, ok := f.assessments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Stats = datatypes.NewJSONType(stats)
	f.statsWrites++
	return nil
}

// ===== ATTEMPTS =====

type fakeAttempts fakeStore

func (f *fakeAttempts) Create(ctx context.Context, attempt *models.AttemptRecord) error {
	f.nextAttemptID++
	attempt.ID = f.nextAttemptID
	attempt.CreatedAt = time.Now()
	copied := *attempt
	f.attempts[attempt.ID] = &copied
	return nil
}

func (f *fakeAttempts) GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttempts) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	var out []*models.AttemptRecord
	for _, a := range f.attempts {
		if filters.Status != nil && a.Status != *filters.Status {
			continue
		}
		if filters.StudentID != nil && a.StudentID != *filters.StudentID {
			continue
		}
		if filters.AssessmentID != nil && a.AssessmentID != *filters.AssessmentID {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeAttempts) GetInProgress(ctx context.Context, assessmentID uint, studentID string) (*models.AttemptRecord, error) {
	for _, a := range f.attempts {
		if a.AssessmentID == assessmentID && a.StudentID == studentID && a.Status == models.AttemptInProgress {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttempts) GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.AttemptRecord, error) {
	out, _, err := f.List(ctx, repositories.AttemptFilters{AssessmentID: &assessmentID})
	return out, err
}

func (f *fakeAttempts) GetByStudent(ctx context.Context, studentID string) ([]*models.AttemptRecord, error) {
	out, _, err := f.List(ctx, repositories.AttemptFilters{StudentID: &studentID})
	return out, err
}

func (f *fakeAttempts) CompleteAttempt(ctx context.Context, assessmentID uint, studentID string, patch repositories.SubmitPatch) (bool, error) {
	for _, a := range f.attempts {
		if a.AssessmentID != assessmentID || a.StudentID != studentID || a.Status != models.AttemptInProgress {
			continue
		}
		completedAt := patch.CompletedAt
		a.Status = models.AttemptCompleted
		a.Answers = datatypes.NewJSONType(patch.Answers)
		a.SectionScores = datatypes.NewJSONType(patch.SectionScores)
		a.OverallPercentage = patch.OverallPercentage
		a.OverallAverageRating = patch.OverallAverageRating
		a.TimeSpent = patch.TimeSpent
		a.CompletedAt = &completedAt
		return true, nil
	}
	return false, nil
}

func (f *fakeAttempts) HasAttempts(ctx context.Context, assessmentID uint) (bool, error) {
	for _, a := range f.attempts {
		if a.AssessmentID == assessmentID {
			return true, nil
		}
	}
	return false, nil
}

// ===== USERS =====

type fakeUsers fakeStore

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Upsert(ctx context.Context, user *models.User) error {
	return nil
}

func (f *fakeUsers) CountEligibleStudents(ctx context.Context, criteria models.Criteria) (int64, error) {
	return f.eligibleStudents, nil
}

// ===== CACHE =====

type fakeCache struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	delete(c.entries, pattern)
	c.deleted = append(c.deleted, pattern)
	return nil
}
