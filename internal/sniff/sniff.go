// Package sniff selects a decoding strategy for an uploaded file.
package sniff

import "strings"

// Format is the decoding strategy for an uploaded file.
type Format int

const (
	// Unsupported means the file is silently skipped: it yields an empty
	// dataset downstream, not an error, so a mixed-format batch still
	// succeeds for the files that can be read.
	Unsupported Format = iota
	// Binary selects the FIT binary message decoder.
	Binary
	// XML selects the TCX trackpoint parser.
	XML
)

// String returns the format label used in logs and persisted records.
func (f Format) String() string {
	switch f {
	case Binary:
		return "fit"
	case XML:
		return "tcx"
	default:
		return "unsupported"
	}
}

// Detect picks the format by case-insensitive filename suffix.
func Detect(filename string) Format {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".fit"):
		return Binary
	case strings.HasSuffix(name, ".tcx"):
		return XML
	default:
		return Unsupported
	}
}
