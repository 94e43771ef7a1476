package repository

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/tv-instance-generator/internal/models"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

// MemoryPreviewRepository keeps previews in process memory with lazy expiry.
type MemoryPreviewRepository struct {
	mu    sync.RWMutex
	items map[string]models.Preview
	now   func() time.Time
}

// NewMemoryPreviewRepository constructs an empty in-memory store.
func NewMemoryPreviewRepository() *MemoryPreviewRepository {
	return &MemoryPreviewRepository{
		items: make(map[string]models.Preview),
		now:   time.Now,
	}
}

// Save stores the preview, stamping ExpiresAt from ttl, and drops any
// entries that already expired.
func (r *MemoryPreviewRepository) Save(_ context.Context, preview *models.Preview, ttl time.Duration) error {
	now := r.now()
	stored := *preview
	if ttl > 0 {
		stored.ExpiresAt = now.Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.Expired(now) {
			delete(r.items, id)
		}
	}
	r.items[stored.ID] = stored
	preview.ExpiresAt = stored.ExpiresAt
	return nil
}

// Get returns the preview or ErrNotFound once it is missing or expired.
func (r *MemoryPreviewRepository) Get(_ context.Context, id string) (*models.Preview, error) {
	r.mu.RLock()
	preview, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	if preview.Expired(r.now()) {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, appErrors.ErrNotFound
	}
	return &preview, nil
}

// Delete removes the preview. Missing ids are not an error.
func (r *MemoryPreviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// Len reports how many previews are held, expired ones included.
func (r *MemoryPreviewRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
