// Package scalar converts untrusted textual values into optional typed
// values. It is the boundary that absorbs upstream formatting variance:
// malformed input maps to "absent", never to an error.
package scalar

import (
	"strconv"
	"strings"
)

// ParseFloat parses text as a number. Returns nil for empty or
// whitespace-only input and for malformed tokens.
func ParseFloat(text string) *float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseInt parses text as an integer. Decimal representations are tolerated
// and truncated toward zero, since some exporters format integer fields as
// "142.0". Returns nil for empty, whitespace-only or malformed input.
func ParseInt(text string) *int {
	value := ParseFloat(text)
	if value == nil {
		return nil
	}
	truncated := int(*value)
	return &truncated
}
