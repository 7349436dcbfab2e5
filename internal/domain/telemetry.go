package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MetricKey identifies one of the supported chart metrics.
// The set is closed: consumers key chart panes by these exact strings.
type MetricKey string

const (
	MetricHeartRate MetricKey = "hr_bpm"
	MetricSpeed     MetricKey = "speed_kmh"
	MetricPower     MetricKey = "power_w"
)

// MetricKeys lists the supported metrics in wire order.
var MetricKeys = []MetricKey{MetricHeartRate, MetricSpeed, MetricPower}

// TelemetryRow is one normalized, timestamped observation from a single
// recording. Timestamp is always present and in UTC; the metric fields are
// independently nullable (nil = the sensor did not report a value, which is
// distinct from a reported zero).
type TelemetryRow struct {
	Timestamp time.Time
	HRBpm     *int
	PowerW    *float64
	SpeedKmh  *float64
}

// Metric returns the row's value for the given metric key, nil when absent.
func (r *TelemetryRow) Metric(key MetricKey) *float64 {
	switch key {
	case MetricHeartRate:
		if r.HRBpm == nil {
			return nil
		}
		v := float64(*r.HRBpm)
		return &v
	case MetricSpeed:
		return r.SpeedKmh
	case MetricPower:
		return r.PowerW
	default:
		return nil
	}
}

// Dataset is the ordered row sequence extracted from one uploaded file,
// non-decreasing by timestamp. An empty dataset is a valid terminal state
// meaning "no usable telemetry", never an error.
type Dataset struct {
	SourceName string
	Rows       []TelemetryRow
}

// Empty reports whether the dataset carries no usable telemetry.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// MetricPoint is one charting point. It marshals as the JSON pair
// [timestamp_ms, value], the shape the charting client consumes.
type MetricPoint struct {
	TimestampMs int64
	Value       float64
}

// MarshalJSON renders the point as [timestamp_ms, value] with the timestamp
// kept integral.
func (p MetricPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.TimestampMs, p.Value})
}

// UnmarshalJSON parses the [timestamp_ms, value] pair form.
func (p *MetricPoint) UnmarshalJSON(data []byte) error {
	var pair [2]json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("metric point: %w", err)
	}
	ts, err := pair[0].Int64()
	if err != nil {
		return fmt.Errorf("metric point timestamp: %w", err)
	}
	value, err := pair[1].Float64()
	if err != nil {
		return fmt.Errorf("metric point value: %w", err)
	}
	p.TimestampMs = ts
	p.Value = value
	return nil
}

// MetricSeries is the charting-ready point list for one metric from one file.
// Name is the source filename.
type MetricSeries struct {
	Name string        `json:"name"`
	Data []MetricPoint `json:"data"`
}

// BatchResult maps each supported metric to the series collected from a
// batch of uploads, in file submission order. Only non-empty series are
// appended; a file that yielded nothing is simply absent.
type BatchResult map[MetricKey][]MetricSeries

// NewBatchResult returns a result with every supported metric present and
// empty, so the response always carries all three keys.
func NewBatchResult() BatchResult {
	result := make(BatchResult, len(MetricKeys))
	for _, key := range MetricKeys {
		result[key] = []MetricSeries{}
	}
	return result
}
