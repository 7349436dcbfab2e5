package normalization

import (
	"sort"

	"activity-telemetry-lab/internal/domain"
)

// SortRows orders rows ascending by timestamp. Device firmware may emit
// records out of chronological order, so this step is mandatory, not
// defensive. The sort is stable: rows sharing a timestamp keep their
// extraction order and are never deduplicated.
func SortRows(rows []domain.TelemetryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}
