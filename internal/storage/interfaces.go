// Package storage defines the archive interfaces for persisted uploads.
// The normalization pipeline itself is persistence-free; these stores back
// the optional upload history exposed by the server.
package storage

import (
	"context"

	"activity-telemetry-lab/internal/domain"
)

// ActivityStore provides access to upload history storage.
type ActivityStore interface {
	// Insert adds a new activity. Returns ErrDuplicateKey if upload_id exists.
	Insert(ctx context.Context, a *domain.Activity) error

	// GetByID retrieves an activity by upload id. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, uploadID string) (*domain.Activity, error)

	// List retrieves up to limit activities, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// TelemetryPointStore provides access to archived metric points.
// Points are not keyed uniquely: the pipeline preserves duplicate
// timestamps within a file, so the store must accept them too.
type TelemetryPointStore interface {
	// InsertBulk appends points. The batch is validated before any write.
	InsertBulk(ctx context.Context, points []*domain.StoredPoint) error

	// GetByUpload retrieves all points for one upload and metric,
	// ordered by timestamp ASC.
	GetByUpload(ctx context.Context, uploadID string, metric domain.MetricKey) ([]*domain.StoredPoint, error)
}
