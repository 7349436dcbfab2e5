package memory

import (
	"context"
	"sort"
	"sync"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

// TelemetryPointStore is an in-memory implementation of
// storage.TelemetryPointStore. Append-only: duplicate timestamps within an
// upload are legal and preserved.
type TelemetryPointStore struct {
	mu   sync.RWMutex
	data []*domain.StoredPoint
}

// NewTelemetryPointStore creates a new in-memory point store.
func NewTelemetryPointStore() *TelemetryPointStore {
	return &TelemetryPointStore{}
}

// Compile-time interface check.
var _ storage.TelemetryPointStore = (*TelemetryPointStore)(nil)

// InsertBulk appends points. The batch is validated before any write.
func (s *TelemetryPointStore) InsertBulk(_ context.Context, points []*domain.StoredPoint) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if p == nil || p.UploadID == "" || p.Metric == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range points {
		pointCopy := *p
		s.data = append(s.data, &pointCopy)
	}
	return nil
}

// GetByUpload retrieves all points for one upload and metric, ordered by
// timestamp ASC. Equal timestamps keep insertion order.
func (s *TelemetryPointStore) GetByUpload(_ context.Context, uploadID string, metric domain.MetricKey) ([]*domain.StoredPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.StoredPoint
	for _, p := range s.data {
		if p.UploadID == uploadID && p.Metric == metric {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}
