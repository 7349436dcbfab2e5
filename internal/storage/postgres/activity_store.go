package postgres

import (
	"context"
	"fmt"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/storage"
)

// ActivityStore implements storage.ActivityStore using PostgreSQL.
type ActivityStore struct {
	pool *Pool
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(pool *Pool) *ActivityStore {
	return &ActivityStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ActivityStore = (*ActivityStore)(nil)

// Insert adds a new activity. Returns ErrDuplicateKey if upload_id exists.
func (s *ActivityStore) Insert(ctx context.Context, a *domain.Activity) error {
	if a == nil || a.UploadID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO activities (
			upload_id, file_name, format, row_count, uploaded_at_ms
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query,
		a.UploadID,
		a.FileName,
		a.Format,
		a.RowCount,
		a.UploadedAtMs,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID retrieves an activity by upload id. Returns ErrNotFound if not exists.
func (s *ActivityStore) GetByID(ctx context.Context, uploadID string) (*domain.Activity, error) {
	query := `
		SELECT upload_id, file_name, format, row_count, uploaded_at_ms
		FROM activities
		WHERE upload_id = $1
	`

	row := s.pool.QueryRow(ctx, query, uploadID)
	a, err := scanActivity(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get activity by id: %w", err)
	}
	return a, nil
}

// List retrieves up to limit activities, newest first.
func (s *ActivityStore) List(ctx context.Context, limit int) ([]*domain.Activity, error) {
	query := `
		SELECT upload_id, file_name, format, row_count, uploaded_at_ms
		FROM activities
		ORDER BY uploaded_at_ms DESC, upload_id ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var result []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return result, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(&a.UploadID, &a.FileName, &a.Format, &a.RowCount, &a.UploadedAtMs)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
