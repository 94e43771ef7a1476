package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/tv-instance-generator/internal/models"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

// UpdateBatchJobParams defines the mutable fields.
type UpdateBatchJobParams struct {
	Status       *models.BatchStatus
	Progress     *int
	ResultPath   *string
	ResultURL    *string
	ExpiresAt    *time.Time
	ErrorMessage *string
	FinishedAt   *time.Time
}

// BatchRepository is the in-memory job table behind batch exports. Jobs do
// not survive a restart; their artifacts are swept by the cleanup loop.
type BatchRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.BatchJob
}

// NewBatchRepository constructs an empty job table.
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{jobs: make(map[string]models.BatchJob)}
}

// Create assigns an id and creation time when missing and stores the job.
func (r *BatchRepository) Create(_ context.Context, job *models.BatchJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, "batch job already exists")
	}
	r.jobs[job.ID] = *job
	return nil
}

// GetByID returns a copy of the job or ErrNotFound.
func (r *BatchRepository) GetByID(_ context.Context, id string) (*models.BatchJob, error) {
	r.mu.RLock()
	job, ok := r.jobs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &job, nil
}

// Update applies the non-nil fields of params.
func (r *BatchRepository) Update(_ context.Context, id string, params UpdateBatchJobParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultPath != nil {
		job.ResultPath = *params.ResultPath
	}
	if params.ResultURL != nil {
		url := *params.ResultURL
		job.ResultURL = &url
	}
	if params.ExpiresAt != nil {
		exp := *params.ExpiresAt
		job.ExpiresAt = &exp
	}
	if params.ErrorMessage != nil {
		if *params.ErrorMessage == "" {
			job.ErrorMessage = nil
		} else {
			msg := *params.ErrorMessage
			job.ErrorMessage = &msg
		}
	}
	if params.FinishedAt != nil {
		at := *params.FinishedAt
		job.FinishedAt = &at
	}
	r.jobs[id] = job
	return nil
}

// ListFinishedBefore returns terminal jobs finished before cutoff, oldest first.
func (r *BatchRepository) ListFinishedBefore(_ context.Context, cutoff time.Time, limit int) ([]models.BatchJob, error) {
	r.mu.RLock()
	result := make([]models.BatchJob, 0)
	for _, job := range r.jobs {
		if job.Terminal() && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			result = append(result, job)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].FinishedAt.Before(*result[j].FinishedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete forgets a job.
func (r *BatchRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.jobs, id)
	r.mu.Unlock()
	return nil
}
