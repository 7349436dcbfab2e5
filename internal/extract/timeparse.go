package extract

import (
	"strings"
	"time"
)

// timestampLayouts are the ISO-8601-like shapes seen in real-world exports.
// Layouts without a zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp normalizes a textual timestamp to UTC. The second return
// value is false when the input is empty or matches no known layout; such
// rows are discarded at extraction time.
func ParseTimestamp(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
