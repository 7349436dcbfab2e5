package clickhouse

import (
	"context"
	"fmt"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

// PointStore implements storage.TelemetryPointStore using ClickHouse.
type PointStore struct {
	conn *Conn
}

// NewPointStore creates a new PointStore.
func NewPointStore(conn *Conn) *PointStore {
	return &PointStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TelemetryPointStore = (*PointStore)(nil)

// InsertBulk appends multiple points. Duplicate timestamps within an upload
// are legal and stored as-is; device recordings genuinely contain them.
func (s *PointStore) InsertBulk(ctx context.Context, points []*domain.StoredPoint) error {
	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO telemetry_points (
			upload_id, metric, timestamp_ms, value
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.UploadID, string(p.Metric), uint64(p.TimestampMs), p.Value,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByUpload retrieves all points for one metric of an upload, ordered by timestamp ASC.
func (s *PointStore) GetByUpload(ctx context.Context, uploadID string, metric domain.MetricKey) ([]*domain.StoredPoint, error) {
	query := `
		SELECT upload_id, metric, timestamp_ms, value
		FROM telemetry_points
		WHERE upload_id = ? AND metric = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, uploadID, string(metric))
	if err != nil {
		return nil, fmt.Errorf("query by upload: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanPoints scans multiple rows into a slice.
func scanPoints(rows chRows) ([]*domain.StoredPoint, error) {
	var points []*domain.StoredPoint

	for rows.Next() {
		var p domain.StoredPoint
		var metric string
		var timestampMs uint64

		if err := rows.Scan(&p.UploadID, &metric, &timestampMs, &p.Value); err != nil {
			return nil, fmt.Errorf("scan telemetry point row: %w", err)
		}

		p.Metric = domain.MetricKey(metric)
		p.TimestampMs = int64(timestampMs)
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry point rows: %w", err)
	}

	return points, nil
}
