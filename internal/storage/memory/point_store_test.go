package memory

import (
	"context"
	"errors"
	"testing"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

func TestTelemetryPointStore_InsertBulkAndGet(t *testing.T) {
	store := NewTelemetryPointStore()
	ctx := context.Background()

	points := []*domain.StoredPoint{
		{UploadID: "u1", Metric: domain.MetricHeartRate, TimestampMs: 1000, Value: 140},
		{UploadID: "u1", Metric: domain.MetricHeartRate, TimestampMs: 2000, Value: 142},
		{UploadID: "u1", Metric: domain.MetricSpeed, TimestampMs: 1000, Value: 18.0},
		{UploadID: "u2", Metric: domain.MetricHeartRate, TimestampMs: 1500, Value: 150},
	}
	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByUpload(ctx, "u1", domain.MetricHeartRate)
	if err != nil {
		t.Fatalf("GetByUpload failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 points, got %d", len(result))
	}
	if result[0].TimestampMs != 1000 || result[1].TimestampMs != 2000 {
		t.Errorf("points not ordered by timestamp: %d %d", result[0].TimestampMs, result[1].TimestampMs)
	}
}

func TestTelemetryPointStore_DuplicateTimestampsPreserved(t *testing.T) {
	store := NewTelemetryPointStore()
	ctx := context.Background()

	// The pipeline does not deduplicate equal timestamps; neither may the
	// archive.
	points := []*domain.StoredPoint{
		{UploadID: "u1", Metric: domain.MetricHeartRate, TimestampMs: 1000, Value: 140},
		{UploadID: "u1", Metric: domain.MetricHeartRate, TimestampMs: 1000, Value: 141},
	}
	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, _ := store.GetByUpload(ctx, "u1", domain.MetricHeartRate)
	if len(result) != 2 {
		t.Fatalf("expected both duplicate-timestamp points, got %d", len(result))
	}
	if result[0].Value != 140 || result[1].Value != 141 {
		t.Errorf("equal timestamps lost insertion order: %v %v", result[0].Value, result[1].Value)
	}
}

func TestTelemetryPointStore_InvalidInput(t *testing.T) {
	store := NewTelemetryPointStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.StoredPoint{nil})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil point, got %v", err)
	}

	err = store.InsertBulk(ctx, []*domain.StoredPoint{{UploadID: "", Metric: domain.MetricHeartRate}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty upload id, got %v", err)
	}
}

func TestTelemetryPointStore_EmptyBulk(t *testing.T) {
	store := NewTelemetryPointStore()

	if err := store.InsertBulk(context.Background(), nil); err != nil {
		t.Errorf("empty bulk should succeed, got %v", err)
	}
}

func TestTelemetryPointStore_MissingUpload(t *testing.T) {
	store := NewTelemetryPointStore()

	result, err := store.GetByUpload(context.Background(), "nope", domain.MetricPower)
	if err != nil {
		t.Fatalf("GetByUpload failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected no points, got %d", len(result))
	}
}
