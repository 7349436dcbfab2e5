package domain

import (
	"encoding/json"
	"testing"
)

func TestMetricPointMarshalsAsPair(t *testing.T) {
	got, err := json.Marshal(MetricPoint{TimestampMs: 1672567200000, Value: 150})
	if err != nil {
		t.Fatal(err)
	}
	// The timestamp must stay integral; charting clients index on it.
	if string(got) != "[1672567200000,150]" {
		t.Errorf("marshal = %s, want [1672567200000,150]", got)
	}
}

func TestMetricPointRoundTrip(t *testing.T) {
	in := MetricPoint{TimestampMs: 1672567201000, Value: 18.5}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out MetricPoint
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMetricPointUnmarshalRejectsMalformed(t *testing.T) {
	var p MetricPoint
	for _, bad := range []string{`{"ts":1}`, `["x",1]`, `[1,"y"]`} {
		if err := json.Unmarshal([]byte(bad), &p); err == nil {
			t.Errorf("expected error for %s", bad)
		}
	}
}

func TestNewBatchResultHasAllKeys(t *testing.T) {
	result := NewBatchResult()
	if len(result) != len(MetricKeys) {
		t.Fatalf("key count = %d, want %d", len(result), len(MetricKeys))
	}
	for _, key := range MetricKeys {
		series, ok := result[key]
		if !ok {
			t.Errorf("missing key %s", key)
		}
		if series == nil || len(series) != 0 {
			t.Errorf("key %s should map to an empty non-nil slice", key)
		}
	}
}

func TestRowMetricAccessor(t *testing.T) {
	hr := 142
	speed := 18.0
	row := TelemetryRow{HRBpm: &hr, SpeedKmh: &speed}

	if v := row.Metric(MetricHeartRate); v == nil || *v != 142 {
		t.Errorf("hr = %v, want 142", v)
	}
	if v := row.Metric(MetricSpeed); v == nil || *v != 18.0 {
		t.Errorf("speed = %v, want 18", v)
	}
	if v := row.Metric(MetricPower); v != nil {
		t.Errorf("power = %v, want nil", v)
	}
	if v := row.Metric(MetricKey("cadence")); v != nil {
		t.Errorf("unknown metric = %v, want nil", v)
	}
}
