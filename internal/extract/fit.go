// Package extract consumes decoded activity files and emits normalized
// telemetry rows. The low-level decoders are external collaborators:
// github.com/tormoder/fit for the binary format, the xmlquery node tree
// for TCX documents.
package extract

import (
	"bytes"
	"math"

	"github.com/tormoder/fit"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/normalization"
)

// metersPerSecondToKmh converts the FIT speed unit (m/s) to km/h.
const metersPerSecondToKmh = 3.6

// FIT base-type invalid sentinels for the unscaled record fields.
const (
	fitUint8Invalid  = 0xFF
	fitUint16Invalid = 0xFFFF
)

// FromFIT decodes a FIT payload and extracts one telemetry row per record
// message. A payload the decoder rejects yields no rows: a corrupt file is
// indistinguishable from a file with zero records, and neither is an error.
func FromFIT(data []byte) []domain.TelemetryRow {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil
	}
	return rowsFromRecords(activity.Records)
}

// rowsFromRecords maps decoded record messages to telemetry rows. A record
// without a timestamp is dropped entirely. Metric fields carrying the FIT
// invalid sentinel stay absent; in particular an absent speed never becomes
// a zero.
func rowsFromRecords(records []*fit.RecordMsg) []domain.TelemetryRow {
	rows := make([]domain.TelemetryRow, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Timestamp.IsZero() {
			continue
		}
		row := domain.TelemetryRow{Timestamp: rec.Timestamp.UTC()}
		if rec.HeartRate != fitUint8Invalid {
			hr := int(rec.HeartRate)
			row.HRBpm = &hr
		}
		if rec.Power != fitUint16Invalid {
			power := float64(rec.Power)
			row.PowerW = &power
		}
		if speed := rec.GetSpeedScaled(); !math.IsNaN(speed) {
			kmh := speed * metersPerSecondToKmh
			row.SpeedKmh = &kmh
		}
		rows = append(rows, row)
	}
	normalization.SortRows(rows)
	return rows
}
