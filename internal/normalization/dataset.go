// Package normalization turns extracted telemetry rows into ordered
// datasets and charting-ready metric series.
package normalization

import (
	"activity-telemetry-lab/internal/domain"
)

// BuildDataset packages extracted rows into a Dataset. Rows whose timestamp
// failed to normalize are dropped, everything else is normalized to UTC and
// sorted ascending. An input that is empty, or whose every row was dropped,
// produces the empty dataset terminal state.
func BuildDataset(sourceName string, rows []domain.TelemetryRow) *domain.Dataset {
	kept := make([]domain.TelemetryRow, 0, len(rows))
	for _, row := range rows {
		if row.Timestamp.IsZero() {
			continue
		}
		row.Timestamp = row.Timestamp.UTC()
		kept = append(kept, row)
	}
	SortRows(kept)
	return &domain.Dataset{SourceName: sourceName, Rows: kept}
}
