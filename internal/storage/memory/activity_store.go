// Package memory provides in-memory store implementations, the default
// when the server runs without database DSNs.
package memory

import (
	"context"
	"sort"
	"sync"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

// ActivityStore is an in-memory implementation of storage.ActivityStore.
type ActivityStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Activity // keyed by upload_id
}

// NewActivityStore creates a new in-memory activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{data: make(map[string]*domain.Activity)}
}

// Compile-time interface check.
var _ storage.ActivityStore = (*ActivityStore)(nil)

// Insert adds a new activity. Returns ErrDuplicateKey if upload_id exists.
func (s *ActivityStore) Insert(_ context.Context, a *domain.Activity) error {
	if a == nil || a.UploadID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[a.UploadID]; exists {
		return storage.ErrDuplicateKey
	}
	activityCopy := *a
	s.data[a.UploadID] = &activityCopy
	return nil
}

// GetByID retrieves an activity by upload id.
func (s *ActivityStore) GetByID(_ context.Context, uploadID string) (*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[uploadID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	activityCopy := *a
	return &activityCopy, nil
}

// List retrieves up to limit activities, newest first.
func (s *ActivityStore) List(_ context.Context, limit int) ([]*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Activity, 0, len(s.data))
	for _, a := range s.data {
		activityCopy := *a
		result = append(result, &activityCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].UploadedAtMs != result[j].UploadedAtMs {
			return result[i].UploadedAtMs > result[j].UploadedAtMs
		}
		return result[i].UploadID < result[j].UploadID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
