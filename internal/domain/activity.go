package domain

// UploadFile is one file received at the input boundary: the name the client
// sent and the raw payload bytes.
type UploadFile struct {
	Name string
	Data []byte
}

// Activity is the persisted summary of one normalized upload. It is also
// the wire shape of the activity listing endpoint.
type Activity struct {
	UploadID     string `json:"upload_id"` // deterministic id, see internal/idhash
	FileName     string `json:"file_name"` // filename as uploaded
	Format       string `json:"format"`    // "fit", "tcx" or "unsupported"
	RowCount     int    `json:"row_count"` // rows in the built dataset
	UploadedAtMs int64  `json:"uploaded_at_ms"`
}

// StoredPoint is one archived metric point for a persisted upload.
// Duplicate timestamps are legal: the pipeline preserves them, so the
// archive must too.
type StoredPoint struct {
	UploadID    string
	Metric      MetricKey
	TimestampMs int64
	Value       float64
}
